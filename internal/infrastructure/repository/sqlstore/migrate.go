package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/riskibarqy/cbb-tracker/db/migrations"
)

// NewMigrator builds a migrator over the embedded migrations of the dialect.
// Postgres migrations run on a dedicated connection that Close releases.
// Closing a sqlite migrator closes db as well.
func NewMigrator(ctx context.Context, db *sql.DB, dialect Dialect) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	var driver database.Driver
	switch dialect {
	case DialectSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case DialectPostgres:
		driver, err = postgresDriver(ctx, db)
	default:
		_ = src.Close()
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func postgresDriver(ctx context.Context, db *sql.DB) (database.Driver, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return driver, nil
}

// Migrate applies every pending embedded migration. Sqlite migrations run on
// a dedicated handle because the sqlite driver closes the handle it owns; db
// stays open in both dialects.
func Migrate(ctx context.Context, dsn DSN, db *sql.DB) (err error) {
	handle := db
	if dsn.Dialect == DialectSQLite {
		handle, err = sql.Open(dsn.Driver, dsn.DataSource)
		if err != nil {
			return fmt.Errorf("open migration handle: %w", err)
		}
	}

	m, err := NewMigrator(ctx, handle, dsn.Dialect)
	if err != nil {
		if handle != db {
			_ = handle.Close()
		}
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := crerr.CombineErrors(srcErr, dbErr); closeErr != nil {
			err = crerr.CombineErrors(err, fmt.Errorf("close migrator: %w", closeErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
