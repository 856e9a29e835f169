package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/riskibarqy/cbb-tracker/internal/app"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/watchlist"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"github.com/spf13/cobra"
)

func scheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <team>",
		Short: "List a team's in-season schedule from the provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				team, err := rt.Resolver.ResolveTeam(ctx, args[0])
				if err != nil {
					return err
				}
				events, stats, err := rt.Schedule.Events(ctx, team.ID, rt.Config.SeasonYear)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s): %d games, %d completed, %d outside the season\n",
					team.Name, team.ID, len(events), stats.Completed, stats.OutOfSeason)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "EVENT\tDATE\tSTATUS\tMATCHUP")
				for _, event := range events {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s @ %s\n", event.ID, event.Date, event.StatusLabel, event.AwayTeam, event.HomeTeam)
				}
				return tw.Flush()
			})
		},
	}
}

func statsCmd(opts *rootOptions) *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Season averages of stored players over completed games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				items, err := rt.Query.SeasonAverages(ctx, playerstats.AveragesFilter{
					SeasonYear: rt.Config.SeasonYear,
					TeamID:     teamID,
				})
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no completed games stored for this season")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PLAYER\tTEAM\tGP\tPPG\tRPG\tAPG\tSPG\tBPG\tTOV")
				for _, item := range items {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
						item.PlayerName, item.TeamName, item.GamesPlayed,
						item.PPG, item.RPG, item.APG, item.SPG, item.BPG, item.TOV)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "", "provider team id")
	return cmd
}

func boxscoresCmd(opts *rootOptions) *cobra.Command {
	var (
		namesFile string
		last      int
		teamID    string
	)
	cmd := &cobra.Command{
		Use:   "boxscores [player names...]",
		Short: "Recent stored game logs of players",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if namesFile != "" {
				fromFile, err := readNamesFile(namesFile)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return fmt.Errorf("pass player names or --file")
			}

			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				logs, err := rt.Query.GameLogs(ctx, usecase.GameLogQuery{
					Names:      names,
					SeasonYear: rt.Config.SeasonYear,
					Last:       last,
					TeamID:     teamID,
				})
				if err != nil {
					return err
				}
				printGameLogs(cmd, logs)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&namesFile, "file", "", "names file (.txt, .csv or .json)")
	cmd.Flags().IntVar(&last, "last", 5, "games per player, newest first")
	cmd.Flags().StringVar(&teamID, "team", "", "provider team id")
	return cmd
}

func printGameLogs(cmd *cobra.Command, logs []usecase.PlayerGameLog) {
	out := cmd.OutOrStdout()
	for _, entry := range logs {
		if !entry.Found {
			fmt.Fprintf(out, "%s: no stored player\n\n", entry.Query)
			continue
		}
		fmt.Fprintf(out, "%s (%s)\n", entry.Player.Name, entry.TeamName)
		if len(entry.Games) == 0 {
			fmt.Fprintln(out, "  no completed games")
			fmt.Fprintln(out)
			continue
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  DATE\tMATCHUP\tMIN\tPTS\tREB\tAST\tSTL\tBLK\tTO\tFG\t3PT\tFT")
		for _, game := range entry.Games {
			line := game.Line
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d-%d\t%d-%d\t%d-%d\n",
				game.DateOnly(), game.Matchup(), line.Minutes,
				line.Points, line.Rebounds, line.Assists, line.Steals, line.Blocks, line.Turnovers,
				line.FGM, line.FGA, line.TPM, line.TPA, line.FTM, line.FTA)
		}
		_ = tw.Flush()
		fmt.Fprintln(out)
	}
}

func reportCmd(opts *rootOptions) *cobra.Command {
	var (
		namesFile string
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the daily HTML report and summary.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				path := namesFile
				if path == "" {
					path = rt.Config.ReportWatchlistPath
				}
				names, err := watchlist.LoadNames(path)
				if err != nil {
					return err
				}
				dir := outDir
				if dir == "" {
					dir = rt.Config.ReportOutDir
				}

				result, err := rt.Report.Generate(ctx, usecase.ReportInput{
					Names:      names,
					SeasonYear: rt.Config.SeasonYear,
					OutDir:     dir,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "wrote %s and %s for %d players\n", result.IndexPath, result.SummaryPath, result.Players)
				for _, highlight := range result.Highlights {
					fmt.Fprintf(out, "  %s\n", highlight)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&namesFile, "names", "", "plain-text player list, overrides REPORT_WATCHLIST_PATH")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory, overrides REPORT_OUT_DIR")
	return cmd
}
