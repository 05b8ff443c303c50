package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"moviedex/internal/config"
	"moviedex/internal/kvstore"
)

// openDB returns a database/sql handle for goose plus a cleanup func.
func openDB(ctx context.Context, driver string, cfg config.StoreConfig) (*sql.DB, func(), error) {
	switch driver {
	case kvstore.DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			return nil, nil, errors.New("sqlite path is empty")
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	case kvstore.DriverPostgres:
		if cfg.DSN == "" {
			return nil, nil, errors.New("postgres needs DB_DSN")
		}
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, func() {
			_ = db.Close()
			pool.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("driver %q has no schema to migrate (want sqlite or postgres)", driver)
	}
}
