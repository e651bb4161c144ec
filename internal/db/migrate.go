package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/articled/apiserver/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// NewMigrator returns a migrator for the configured driver using the
// migrations embedded in the binary. Callers must Close it.
func NewMigrator(cfg config.Config) (*migrate.Migrate, error) {
	driver := cfg.Database.Driver
	if driver == "" {
		driver = config.DriverPostgres
	}

	var databaseURL string
	switch driver {
	case config.DriverPostgres:
		databaseURL = PostgresURL(cfg)
	case config.DriverSQLite:
		databaseURL = "sqlite3://" + cfg.Database.Path
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	src, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrator failed: %w", err)
	}
	return migrator, nil
}

// MigrateSQLite applies all sqlite3 migrations over an already open handle.
// The handle stays open; closing the migrator would close it too.
func MigrateSQLite(conn *sql.DB) error {
	src, err := iofs.New(migrations, "migrations/"+config.DriverSQLite)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("init sqlite3 migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, config.DriverSQLite, driver)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}
