package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/riskibarqy/cbb-tracker/internal/app"
	"github.com/riskibarqy/cbb-tracker/internal/domain/season"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"github.com/spf13/cobra"
)

func syncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync completed games of every watchlist player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				list, err := rt.Watchlist.List(ctx)
				if err != nil {
					return err
				}

				seasonYear := rt.Config.SeasonYear
				if !cmd.Flags().Changed("season") && list.Season != "" {
					year, err := season.ParseYear(list.Season)
					if err != nil {
						return fmt.Errorf("watchlist season: %w", err)
					}
					seasonYear = year
				}

				result, err := rt.Sync.SyncWatchlist(ctx, usecase.WatchlistSyncInput{
					SeasonYear: seasonYear,
					Players:    list.Players,
				})
				return finishSync(cmd.OutOrStdout(), result, err)
			})
		},
	}
}

func syncTeamCmd(opts *rootOptions) *cobra.Command {
	var players []string
	cmd := &cobra.Command{
		Use:   "sync-team <team>",
		Short: "Sync one team by name, alias or provider id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				result, err := rt.Sync.SyncTeam(ctx, usecase.TeamSyncInput{
					Team:         args[0],
					SeasonYear:   rt.Config.SeasonYear,
					TrackedNames: players,
				})
				return finishSync(cmd.OutOrStdout(), result, err)
			})
		},
	}
	cmd.Flags().StringArrayVar(&players, "player", nil, "only store this player (repeatable)")
	return cmd
}

func syncAllCmd(opts *rootOptions) *cobra.Command {
	var (
		conferences []string
		maxTeams    int
	)
	cmd := &cobra.Command{
		Use:   "sync-all",
		Short: "Sync every team of the provider catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				result, err := rt.Sync.SyncAll(ctx, usecase.BulkSyncInput{
					SeasonYear:  rt.Config.SeasonYear,
					Conferences: conferences,
					MaxTeams:    maxTeams,
				})
				return finishSync(cmd.OutOrStdout(), result, err)
			})
		},
	}
	cmd.Flags().StringArrayVar(&conferences, "conference", nil, "conference name substring (repeatable)")
	cmd.Flags().IntVar(&maxTeams, "max-teams", 0, "stop after this many teams, 0 for all")
	return cmd
}

func dumpCmd(opts *rootOptions) *cobra.Command {
	var (
		teamQuery string
		outDir    string
		saveJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write a team's completed box scores to CSV without touching the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				result, err := rt.Export.Export(ctx, usecase.ExportInput{
					Team:       teamQuery,
					SeasonYear: rt.Config.SeasonYear,
					OutDir:     outDir,
					SaveJSON:   saveJSON,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "wrote %s (%d rows from %d completed games)\n", result.CSVPath, result.Rows, result.CompletedGames)
				if result.JSONFiles > 0 {
					fmt.Fprintf(out, "saved %d raw summaries\n", result.JSONFiles)
				}
				if result.EventsFailed > 0 {
					fmt.Fprintf(out, "%d games could not be fetched\n", result.EventsFailed)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&teamQuery, "team", "", "team name, alias or provider id")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().BoolVar(&saveJSON, "json", false, "also save each raw summary as JSON")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

// finishSync prints the counts of any started run. Provider failures that
// stop a run are reported but only configuration and input problems fail
// the command.
func finishSync(w io.Writer, result usecase.SyncResult, err error) error {
	if result.RunID != "" {
		printSyncResult(w, result)
	}
	if err == nil {
		return nil
	}
	if result.RunID == "" ||
		usecase.IsConfiguration(err) ||
		errors.Is(err, usecase.ErrInvalidInput) ||
		errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(w, "  sync stopped: %v\n", err)
	return nil
}

func printSyncResult(w io.Writer, result usecase.SyncResult) {
	fmt.Fprintln(w, result.Summary())
	for _, name := range result.UnmatchedNames {
		fmt.Fprintf(w, "  not found on roster: %s\n", name)
	}
	for _, failure := range result.Failures {
		if failure.EventID != "" {
			fmt.Fprintf(w, "  failed %s %s event %s: %s\n", failure.Scope, failure.Team, failure.EventID, failure.Message)
			continue
		}
		fmt.Fprintf(w, "  failed %s %s: %s\n", failure.Scope, failure.Team, failure.Message)
	}
}
