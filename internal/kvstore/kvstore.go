package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=kvstore.go -destination=mocks/mock_store.go -package=mocks

var ErrNotFound = errors.New("key not found")

// Store keeps opaque values under a namespace and key.
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver     string
	SQLitePath string
	DSN        string
	Timeout    time.Duration
}

// Open builds the store selected by opts.Driver. SQLite databases are
// migrated on open; Postgres expects cmd/migrate to have run.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, errors.New("postgres store: DB_DSN is empty")
		}
		pool, err := pgxpool.New(ctx, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewPostgres(pool, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
