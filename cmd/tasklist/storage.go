package main

import (
	"context"
	"fmt"

	gormstore "github.com/lborres/tasklist/adapters/gorm"
	pgxstore "github.com/lborres/tasklist/adapters/pgx"
	"github.com/lborres/tasklist/core"
	"github.com/lborres/tasklist/internal/config"
)

// store is a storage backend the CLI can migrate and close.
type store interface {
	core.Storage
	Migrate(ctx context.Context) error
	Close() error
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgxstore.Connect(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return pgxstore.New(pool), nil

	case config.DriverSQLite:
		db, err := gormstore.Open(cfg.Path, cfg.LogMode)
		if err != nil {
			return nil, err
		}
		return gormstore.New(db), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
