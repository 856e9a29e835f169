package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/config"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitUptrace exports the spans of one tracker run: usecases, provider HTTP
// calls and SQL statements. The returned func flushes them before exit.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled {
		logger.Debug("tracing off", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing off", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	id := identityFrom(cfg)
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(id.Service),
		uptrace.WithServiceVersion(id.Version),
		uptrace.WithDeploymentEnvironment(id.Env),
		uptrace.WithResourceAttributes(id.attributes()...),
	)

	logger.Info("tracing on",
		"service", id.Service,
		"version", id.Version,
		"env", id.Env,
		"provider", id.Provider,
		"season_year", id.SeasonYear,
	)
	return uptrace.Shutdown, nil
}
