package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	for _, key := range []string{
		"DB_URL", "DB_AUTO_MIGRATE", "PROVIDER", "SEASON", "ESPN_TIMEOUT", "ESPN_REQUEST_DELAY",
		"NCAA_REQUEST_DELAY", "WATCHLIST_PATH", "CATALOG_CACHE_TTL", "LOG_FORMAT", "UPTRACE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBURL != "sqlite://cbb_tracker.sqlite" {
		t.Fatalf("unexpected default DB_URL: %q", cfg.DBURL)
	}
	if !cfg.DBAutoMigrate {
		t.Fatalf("expected auto migrate by default")
	}
	if cfg.Provider != ProviderESPN {
		t.Fatalf("unexpected default provider: %q", cfg.Provider)
	}
	if cfg.SeasonYear != 2026 {
		t.Fatalf("unexpected default season year: %d", cfg.SeasonYear)
	}
	if cfg.ESPNTimeout != 20*time.Second {
		t.Fatalf("unexpected ESPN timeout: %s", cfg.ESPNTimeout)
	}
	if cfg.ESPNRequestDelay != 50*time.Millisecond || cfg.NCAARequestDelay != 200*time.Millisecond {
		t.Fatalf("unexpected request delays: espn=%s ncaa=%s", cfg.ESPNRequestDelay, cfg.NCAARequestDelay)
	}
	if cfg.WatchlistPath != "players.yaml" {
		t.Fatalf("unexpected watchlist path: %q", cfg.WatchlistPath)
	}
	if cfg.CatalogCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected catalog ttl: %s", cfg.CatalogCacheTTL)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected log format: %q", cfg.LogFormat)
	}
}

func TestLoad_SeasonAndProviderParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("season span", func(t *testing.T) {
		t.Setenv("SEASON", "2024-25")
		t.Setenv("PROVIDER", "NCAA")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SeasonYear != 2025 {
			t.Fatalf("unexpected season year: %d", cfg.SeasonYear)
		}
		if cfg.Provider != ProviderNCAA {
			t.Fatalf("unexpected provider: %q", cfg.Provider)
		}
	})

	t.Run("invalid season", func(t *testing.T) {
		t.Setenv("SEASON", "2024-27")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-consecutive season span")
		}
	})

	t.Run("invalid provider", func(t *testing.T) {
		t.Setenv("SEASON", "")
		t.Setenv("PROVIDER", "sportsradar")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown provider")
		}
	})
}

func TestLoad_DurationValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid ESPN_TIMEOUT")
		}
	})

	t.Run("zero ttl", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "")
		t.Setenv("CATALOG_CACHE_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero CATALOG_CACHE_TTL")
		}
	})

	t.Run("zero delay is allowed", func(t *testing.T) {
		t.Setenv("CATALOG_CACHE_TTL", "")
		t.Setenv("ESPN_REQUEST_DELAY", "0s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ESPNRequestDelay != 0 {
			t.Fatalf("unexpected delay: %s", cfg.ESPNRequestDelay)
		}
	})
}

func TestLoad_LogSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelDebug || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	t.Setenv("LOG_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid LOG_FORMAT")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SERVICE_NAME", "cbb-tracker-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "cbb-tracker-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}
