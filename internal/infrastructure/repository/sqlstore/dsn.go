package sqlstore

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DSN is a parsed DB_URL.
type DSN struct {
	Dialect    Dialect
	Driver     string
	DataSource string
	// Name labels the database in traces.
	Name string
}

// ParseDSN accepts sqlite://path, sqlite:path, file:path, a bare file path or
// a postgres:// / postgresql:// URL.
func ParseDSN(raw string) (DSN, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DSN{}, fmt.Errorf("database url is required")
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DSN{
			Dialect:    DialectPostgres,
			Driver:     "postgres",
			DataSource: trimmed,
			Name:       postgresName(trimmed),
		}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return sqliteDSN(trimmed[len("sqlite://"):])
	case strings.HasPrefix(lower, "sqlite:"):
		return sqliteDSN(trimmed[len("sqlite:"):])
	case strings.HasPrefix(lower, "file:"):
		return sqliteDSN(trimmed[len("file:"):])
	case strings.Contains(trimmed, "://"):
		return DSN{}, fmt.Errorf("unsupported database url scheme in %q", trimmed)
	default:
		return sqliteDSN(trimmed)
	}
}

func sqliteDSN(path string) (DSN, error) {
	path, _, _ = strings.Cut(path, "?")
	path = strings.TrimSpace(path)
	if path == "" {
		return DSN{}, fmt.Errorf("sqlite path is required")
	}
	return DSN{
		Dialect:    DialectSQLite,
		Driver:     "sqlite",
		DataSource: path,
		Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}, nil
}

func postgresName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
}
