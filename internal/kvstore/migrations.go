package kvstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrationsDir is the embedded directory holding the migrations for driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "migrations/postgres", nil
	case DriverSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Migrations exposes the embedded migration files for tooling.
func Migrations() fs.FS { return migrationsFS }

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dir, err := UseMigrations(driver)
	if err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", driver, err)
	}
	return nil
}

// UseMigrations points goose at the embedded files for driver and returns
// the directory to pass to goose commands.
func UseMigrations(driver string) (string, error) {
	dir, err := MigrationsDir(driver)
	if err != nil {
		return "", err
	}
	dialect := "postgres"
	if driver == DriverSQLite {
		dialect = "sqlite3"
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return "", err
	}
	return dir, nil
}
