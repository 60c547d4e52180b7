package db

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"poolcost/core/pricing"
	"poolcost/internal/config"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// Store is a rate-table store that can also delete and be closed
type Store interface {
	pricing.Store
	Delete(ctx context.Context, franchiseID, id string) error
	Close() error
}

// Open returns the store named by cfg.Driver
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		logging.Debug("using in-memory rate-table store")
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Store("create database directory", err)
			}
		}
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		pool := DefaultPoolConfig()
		if cfg.MaxConns > 0 {
			pool.MaxConns = int32(cfg.MaxConns)
		}
		logging.Info("connecting to postgres", zap.Int32("max_conns", pool.MaxConns))
		s, err := ConnectPostgres(ctx, cfg.DSN, pool)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Newf(errors.TypeConfig, "unknown store driver %q", cfg.Driver)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
