// Command cbbtracker syncs college basketball box scores into a local store
// and reports on tracked players.
//
// Usage:
//
//	cbbtracker sync
//	cbbtracker sync-all --conference "atlantic coast" --max-teams 10
//	cbbtracker boxscores "Cooper Flagg" --last 3
//	cbbtracker watchlist add "Cooper Flagg" --team Duke
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/cbb-tracker/internal/app"
	"github.com/riskibarqy/cbb-tracker/internal/config"
	"github.com/riskibarqy/cbb-tracker/internal/domain/season"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags. Each one overrides its env key
// only when set on the command line.
type rootOptions struct {
	dbURL     string
	provider  string
	watchlist string
	season    string
	logLevel  string
	sleep     time.Duration
	dryRun    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "cbbtracker",
		Short:         "College basketball box-score tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.bind(root)

	root.AddCommand(
		syncCmd(opts),
		syncTeamCmd(opts),
		syncAllCmd(opts),
		dumpCmd(opts),
		scheduleCmd(opts),
		statsCmd(opts),
		boxscoresCmd(opts),
		reportCmd(opts),
		watchlistCmd(opts),
		migrateCmd(opts),
	)
	return root
}

func (o *rootOptions) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.dbURL, "db", "", "database url (sqlite://path or postgres://...), overrides DB_URL")
	flags.StringVar(&o.provider, "provider", "", "stats provider (espn, ncaa), overrides PROVIDER")
	flags.StringVar(&o.watchlist, "watchlist", "", "watchlist yaml path, overrides WATCHLIST_PATH")
	flags.StringVar(&o.season, "season", "", "season label or end year (2025-26, 2026), overrides SEASON")
	flags.StringVar(&o.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	flags.DurationVar(&o.sleep, "sleep", 0, "delay between provider requests")
	flags.BoolVar(&o.dryRun, "dry-run", false, "keep every write in memory")
}

func (o *rootOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBURL = o.dbURL
	}
	if flags.Changed("provider") {
		provider, err := config.ParseProvider(o.provider)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Provider = provider
	}
	if flags.Changed("watchlist") {
		cfg.WatchlistPath = o.watchlist
	}
	if flags.Changed("season") {
		year, err := season.ParseYear(o.season)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --season: %w", err)
		}
		cfg.SeasonYear = year
	}
	if flags.Changed("log-level") {
		level, err := logging.ParseLevel(o.logLevel)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if flags.Changed("sleep") {
		if o.sleep < 0 {
			return config.Config{}, fmt.Errorf("--sleep must be >= 0")
		}
		cfg.ESPNRequestDelay = o.sleep
		cfg.NCAARequestDelay = o.sleep
	}
	return cfg, nil
}

// withRuntime builds the runtime for one command and releases it afterwards.
// Interrupts cancel ctx.
func withRuntime(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, rt *app.Runtime) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)
	logging.SetDefault(logger)

	rt, err := app.New(ctx, cfg, logger, app.Options{InMemory: opts.dryRun})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rt.Close(shutdownCtx); err != nil {
			logger.Warn("runtime close failed", "error", err)
		}
	}()

	if opts.dryRun {
		logger.Info("dry run, nothing is persisted")
	}
	return fn(ctx, rt)
}
