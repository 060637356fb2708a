package gorm

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lborres/tasklist/core"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Adapter stores tasklist records in SQLite through gorm.
type Adapter struct {
	db *gorm.DB
}

var _ core.Storage = (*Adapter)(nil)

func New(db *gorm.DB) *Adapter {
	return &Adapter{db: db}
}

// Open creates a SQLite connection with basic tuning. In-memory databases are
// pinned to a single connection so every query sees the same data.
func Open(path string, logMode bool) (*gorm.DB, error) {
	memory := isMemory(path)
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	level := logger.Silent
	if logMode {
		level = logger.Info
	}
	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if memory {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	}
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	return db, nil
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Migrate creates or upgrades all tables.
func (a *Adapter) Migrate(ctx context.Context) error {
	if err := a.db.WithContext(ctx).AutoMigrate(&userRecord{}, &sessionRecord{}, &goalRecord{}, &taskRecord{}); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (a *Adapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
