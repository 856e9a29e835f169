package observability

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/cbb-tracker/internal/config"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

// syncProfiles covers what a bulk sync spends: CPU in normalization and
// allocations from decoded payloads.
var syncProfiles = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// InitPyroscope profiles the run when enabled. Only long bulk syncs produce
// useful profiles.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Debug("profiling off", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	id := identityFrom(cfg)
	appName := cfg.PyroscopeAppName
	if appName == "" {
		appName = id.Service
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags:            id.tags(),
		ProfileTypes:    syncProfiles,
	})
	if err != nil {
		return nil, fmt.Errorf("start profiler: %w", err)
	}

	logger.Info("profiling on", "server_address", cfg.PyroscopeServerAddress, "application", appName)
	return profiler.Stop, nil
}
