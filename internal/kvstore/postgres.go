package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgres(db *pgxpool.Pool, timeout time.Duration) *Postgres {
	return &Postgres{db: db, timeout: timeout}
}

func (r *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Postgres) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var value []byte
	if err := r.db.QueryRow(timeoutCtx, q, namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *Postgres) Put(ctx context.Context, namespace, key string, value []byte) error {
	const q = `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if value == nil {
		value = []byte{}
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, q, namespace, key, value)
	return err
}

func (r *Postgres) Delete(ctx context.Context, namespace, key string) error {
	const q = `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, q, namespace, key)
	return err
}

func (r *Postgres) Close() error {
	r.db.Close()
	return nil
}
