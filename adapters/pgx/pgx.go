package pgx

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lborres/tasklist/core"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.Storage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

// Connect opens a pool for url and verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates any missing tables and indexes.
func (a *Adapter) Migrate(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Close releases the pool.
func (a *Adapter) Close() error {
	a.pool.Close()
	return nil
}
