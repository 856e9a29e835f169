package observability

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultServiceName = "cbb-tracker"
	defaultVersion     = "dev"
	// every run is a one-shot command, never a long-lived server
	processKind = "cli"
)

// runIdentity names one tracker run in traces and profiles.
type runIdentity struct {
	Service    string
	Version    string
	Env        string
	Provider   string
	SeasonYear int
}

func identityFrom(cfg config.Config) runIdentity {
	id := runIdentity{
		Service:    strings.TrimSpace(cfg.ServiceName),
		Version:    strings.TrimSpace(cfg.ServiceVersion),
		Env:        strings.TrimSpace(cfg.AppEnv),
		Provider:   strings.TrimSpace(cfg.Provider),
		SeasonYear: cfg.SeasonYear,
	}
	if id.Service == "" {
		id.Service = defaultServiceName
	}
	if id.Version == "" {
		id.Version = defaultVersion
	}
	if id.Env == "" {
		id.Env = config.EnvDev
	}
	return id
}

func (id runIdentity) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("cbb.process.kind", processKind)}
	if id.Provider != "" {
		attrs = append(attrs, attribute.String("cbb.provider", id.Provider))
	}
	if id.SeasonYear > 0 {
		attrs = append(attrs, attribute.Int("cbb.season_year", id.SeasonYear))
	}
	return attrs
}

func (id runIdentity) tags() map[string]string {
	tags := map[string]string{
		"env":     id.Env,
		"service": id.Service,
		"kind":    processKind,
	}
	if id.Provider != "" {
		tags["provider"] = id.Provider
	}
	if id.SeasonYear > 0 {
		tags["season"] = strconv.Itoa(id.SeasonYear)
	}
	return tags
}
