package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cbb-tracker/external/espn"
	"github.com/riskibarqy/cbb-tracker/external/ncaa"
	"github.com/riskibarqy/cbb-tracker/internal/config"
	repocache "github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/watchlist"
	"github.com/riskibarqy/cbb-tracker/internal/observability"
	"github.com/riskibarqy/cbb-tracker/internal/platform/id"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

type Options struct {
	// InMemory keeps every write in process memory; nothing touches DB_URL.
	InMemory   bool
	HTTPClient *http.Client
	IDs        id.Generator
}

// Runtime holds the services of one CLI invocation. Close releases the
// store and flushes telemetry.
type Runtime struct {
	Config   config.Config
	Logger   *logging.Logger
	Provider usecase.StatsProvider

	Resolver  *usecase.ResolverService
	Schedule  *usecase.ScheduleService
	Sync      *usecase.SyncService
	Query     *usecase.QueryService
	Report    *usecase.ReportService
	Export    *usecase.ExportService
	Watchlist *usecase.WatchlistService

	closers []func(context.Context) error
}

// NewLogger builds the process logger. Output goes to stderr so stdout only
// carries command output.
func NewLogger(cfg config.Config) *logging.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr).With("service", cfg.ServiceName)
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{Config: cfg, Logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.closers = append(rt.closers, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.closers = append(rt.closers, func(context.Context) error { return stopProfiler() })

	repos, err := rt.openRepositories(ctx, opts.InMemory)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	repos.Teams = repocache.NewTeamRepository(repos.Teams, cfg.CatalogCacheTTL)

	provider, aliases := newProvider(cfg, opts.HTTPClient, logger)
	rt.Provider = provider
	rt.Resolver = usecase.NewResolverService(provider, repos.Players, usecase.ResolverConfig{
		Aliases:    aliases,
		CatalogTTL: cfg.CatalogCacheTTL,
	}, logger)
	rt.Schedule = usecase.NewScheduleService(provider, logger)
	rt.Sync = usecase.NewSyncService(provider, rt.Resolver, rt.Schedule, repos, opts.IDs, usecase.SyncConfig{
		ArchiveRawPayloads: cfg.ArchiveRawPayloads,
	}, logger)
	rt.Query = usecase.NewQueryService(rt.Resolver, repos.Teams, repos.Stats, logger)
	rt.Report = usecase.NewReportService(rt.Query, repos.Games, repos.Stats, logger)
	rt.Export = usecase.NewExportService(provider, rt.Resolver, rt.Schedule, logger)
	rt.Watchlist = usecase.NewWatchlistService(watchlist.NewYAMLRepository(cfg.WatchlistPath), logger)

	logger.Debug("runtime ready",
		"provider", provider.Name(),
		"season", cfg.SeasonYear,
		"in_memory", opts.InMemory,
	)
	return rt, nil
}

func (rt *Runtime) openRepositories(ctx context.Context, inMemory bool) (usecase.SyncRepositories, error) {
	if inMemory {
		store := memory.NewStore()
		return usecase.SyncRepositories{
			Teams:   store.Teams,
			Players: store.Players,
			Games:   store.Games,
			Stats:   store.Stats,
			Raw:     store.Raw,
		}, nil
	}

	store, err := sqlstore.Open(ctx, sqlstore.Options{
		URL:         rt.Config.DBURL,
		AutoMigrate: rt.Config.DBAutoMigrate,
		Logger:      rt.Logger,
	})
	if err != nil {
		return usecase.SyncRepositories{}, fmt.Errorf("open store: %w", err)
	}
	rt.closers = append(rt.closers, func(context.Context) error { return store.Close() })

	return usecase.SyncRepositories{
		Teams:   store.Teams,
		Players: store.Players,
		Games:   store.Games,
		Stats:   store.Stats,
		Raw:     store.Raw,
	}, nil
}

func newProvider(cfg config.Config, httpClient *http.Client, logger *logging.Logger) (usecase.StatsProvider, map[string]string) {
	if cfg.Provider == config.ProviderNCAA {
		return ncaa.NewClient(ncaa.ClientConfig{
			HTTPClient:   httpClient,
			BaseURL:      cfg.NCAABaseURL,
			Sport:        cfg.NCAASport,
			Timeout:      cfg.NCAATimeout,
			RequestDelay: cfg.NCAARequestDelay,
			Logger:       logger,
		}), nil
	}

	return espn.NewClient(espn.ClientConfig{
		HTTPClient:   httpClient,
		BaseURL:      cfg.ESPNBaseURL,
		UserAgent:    cfg.ESPNUserAgent,
		Timeout:      cfg.ESPNTimeout,
		RequestDelay: cfg.ESPNRequestDelay,
		Logger:       logger,
	}), usecase.DefaultESPNAliases()
}

// Close runs every release step in reverse order and reports all failures.
func (rt *Runtime) Close(ctx context.Context) error {
	if rt == nil {
		return nil
	}
	var out error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			out = crerr.CombineErrors(out, err)
		}
	}
	rt.closers = nil
	// stderr sync fails on terminals
	_ = rt.Logger.Sync()
	return out
}
