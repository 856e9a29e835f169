package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

var sqlitePragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

type Options struct {
	URL         string
	AutoMigrate bool
	Logger      *logging.Logger
}

// Store owns the single database handle of a run.
type Store struct {
	db      *sqlx.DB
	dsn     DSN
	logger  *logging.Logger
	Teams   *TeamRepository
	Players *PlayerRepository
	Games   *GameRepository
	Stats   *PlayerStatsRepository
	Raw     *RawDataRepository
}

func Open(ctx context.Context, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	dsn, err := ParseDSN(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	db, err := otelsqlx.Open(dsn.Driver, dsn.DataSource,
		otelsql.WithDBName(dsn.Name),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dsn.Dialect, err)
	}

	if dsn.Dialect == DialectSQLite {
		// one writer; sqlite serializes anyway
		db.SetMaxOpenConns(1)
		for _, pragma := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply %q: %w", pragma, err)
			}
		}
	} else {
		db.SetMaxOpenConns(4)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dsn.Dialect, err)
	}

	if opts.AutoMigrate {
		if err := Migrate(ctx, dsn, db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Debug("database opened", "dialect", string(dsn.Dialect), "name", dsn.Name)
	return newStore(db, dsn, logger), nil
}

func newStore(db *sqlx.DB, dsn DSN, logger *logging.Logger) *Store {
	return &Store{
		db:      db,
		dsn:     dsn,
		logger:  logger,
		Teams:   NewTeamRepository(db),
		Players: NewPlayerRepository(db),
		Games:   NewGameRepository(db),
		Stats:   NewPlayerStatsRepository(db),
		Raw:     NewRawDataRepository(db),
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dsn.Dialect
}

// Close is safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil && !strings.Contains(err.Error(), "already closed") {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
