package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/riskibarqy/cbb-tracker/internal/app"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/sqlstore"
	"github.com/spf13/cobra"
)

func watchlistCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage tracked players",
	}
	cmd.AddCommand(watchlistListCmd(opts), watchlistAddCmd(opts), watchlistRemoveCmd(opts))
	return cmd
}

func watchlistListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print tracked players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				list, err := rt.Watchlist.List(ctx)
				if err != nil {
					return err
				}
				if len(list.Players) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "watchlist is empty")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PLAYER\tTEAM")
				for _, entry := range list.Players {
					fmt.Fprintf(tw, "%s\t%s\n", entry.Name, entry.Team)
				}
				return tw.Flush()
			})
		},
	}
}

func watchlistAddCmd(opts *rootOptions) *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "add <player name>",
		Short: "Track a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				if err := rt.Watchlist.Add(ctx, args[0], team); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", args[0], team)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "team name or alias")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func watchlistRemoveCmd(opts *rootOptions) *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "remove <player name>",
		Short: "Stop tracking a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				removed, err := rt.Watchlist.Remove(ctx, args[0], team)
				if err != nil {
					return err
				}
				if removed == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not tracked\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "only remove the entry for this team")
	return cmd
}

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to DB_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			store, err := sqlstore.Open(cmd.Context(), sqlstore.Options{
				URL:         cfg.DBURL,
				AutoMigrate: true,
				Logger:      app.NewLogger(cfg),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is current (%s)\n", store.Dialect())
			return store.Close()
		},
	}
}
