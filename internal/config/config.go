package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/domain/season"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

const (
	ProviderESPN = "espn"
	ProviderNCAA = "ncaa"
)

// Config stores runtime configuration for the tracker.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	LogLevel               logging.Level
	LogFormat              logging.Format
	DBURL                  string
	DBAutoMigrate          bool
	Provider               string
	SeasonYear             int
	ESPNBaseURL            string
	ESPNTimeout            time.Duration
	ESPNRequestDelay       time.Duration
	ESPNUserAgent          string
	NCAABaseURL            string
	NCAASport              string
	NCAATimeout            time.Duration
	NCAARequestDelay       time.Duration
	WatchlistPath          string
	ReportWatchlistPath    string
	ReportOutDir           string
	CatalogCacheTTL        time.Duration
	ArchiveRawPayloads     bool
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logFormat, err := parseLogFormat(getEnv("LOG_FORMAT", string(logging.FormatConsole)))
	if err != nil {
		return Config{}, err
	}

	dbAutoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_AUTO_MIGRATE: %w", err)
	}

	provider, err := ParseProvider(getEnv("PROVIDER", ProviderESPN))
	if err != nil {
		return Config{}, err
	}
	seasonYear, err := season.ParseYear(getEnv("SEASON", "2025-26"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON: %w", err)
	}

	espnTimeout, err := getEnvAsDuration("ESPN_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	espnRequestDelay, err := time.ParseDuration(getEnv("ESPN_REQUEST_DELAY", "50ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_REQUEST_DELAY: %w", err)
	}
	if espnRequestDelay < 0 {
		return Config{}, fmt.Errorf("ESPN_REQUEST_DELAY must be >= 0")
	}

	ncaaTimeout, err := getEnvAsDuration("NCAA_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	ncaaRequestDelay, err := time.ParseDuration(getEnv("NCAA_REQUEST_DELAY", "200ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NCAA_REQUEST_DELAY: %w", err)
	}
	if ncaaRequestDelay < 0 {
		return Config{}, fmt.Errorf("NCAA_REQUEST_DELAY must be >= 0")
	}

	catalogCacheTTL, err := getEnvAsDuration("CATALOG_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	archiveRawPayloads, err := strconv.ParseBool(getEnv("ARCHIVE_RAW_PAYLOADS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_RAW_PAYLOADS: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("SERVICE_NAME", "cbb-tracker"),
		ServiceVersion:         getEnv("SERVICE_VERSION", "dev"),
		LogLevel:               logLevel,
		LogFormat:              logFormat,
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "sqlite://cbb_tracker.sqlite")),
		DBAutoMigrate:          dbAutoMigrate,
		Provider:               provider,
		SeasonYear:             seasonYear,
		ESPNBaseURL:            strings.TrimSpace(getEnv("ESPN_BASE_URL", "")),
		ESPNTimeout:            espnTimeout,
		ESPNRequestDelay:       espnRequestDelay,
		ESPNUserAgent:          strings.TrimSpace(getEnv("ESPN_USER_AGENT", "")),
		NCAABaseURL:            strings.TrimSpace(getEnv("NCAA_BASE_URL", "")),
		NCAASport:              strings.TrimSpace(getEnv("NCAA_SPORT", "")),
		NCAATimeout:            ncaaTimeout,
		NCAARequestDelay:       ncaaRequestDelay,
		WatchlistPath:          strings.TrimSpace(getEnv("WATCHLIST_PATH", "players.yaml")),
		ReportWatchlistPath:    strings.TrimSpace(getEnv("REPORT_WATCHLIST_PATH", "players.txt")),
		ReportOutDir:           strings.TrimSpace(getEnv("REPORT_OUT_DIR", "site")),
		CatalogCacheTTL:        catalogCacheTTL,
		ArchiveRawPayloads:     archiveRawPayloads,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

// ParseProvider accepts espn and ncaa, ignoring case.
func ParseProvider(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case ProviderESPN, ProviderNCAA:
		return value, nil
	default:
		return "", fmt.Errorf("invalid PROVIDER %q: valid values are %s, %s", v, ProviderESPN, ProviderNCAA)
	}
}

func parseLogFormat(v string) (logging.Format, error) {
	switch logging.Format(strings.ToLower(strings.TrimSpace(v))) {
	case logging.FormatJSON:
		return logging.FormatJSON, nil
	case logging.FormatConsole:
		return logging.FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
