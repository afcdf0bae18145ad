// Package db selects and opens the configured state storage backend.
package db

import (
	"context"
	"fmt"

	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/infrastructure/db/file"
	"github.com/99minutos/community-board/internal/infrastructure/db/memory"
	"github.com/99minutos/community-board/internal/infrastructure/db/mongo"
	"github.com/99minutos/community-board/internal/infrastructure/db/redis"
	"github.com/99minutos/community-board/internal/infrastructure/db/sqlkv"
	"github.com/99minutos/community-board/internal/pkg/config"
)

// Closer releases the resources held by a storage backend.
type Closer func() error

func noopCloser() error { return nil }

// OpenStorage builds the backend named by cfg.Storage.Backend.
func OpenStorage(ctx context.Context, cfg *config.Config) (ports.Storage, Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), noopCloser, nil

	case config.BackendFile:
		s, err := file.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, noopCloser, nil

	case config.BackendSQLite:
		s, err := sqlkv.Open(ctx, sqlkv.DialectSQLite, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendPostgres:
		s, err := sqlkv.Open(ctx, sqlkv.DialectPostgres, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendRedis:
		s, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("db: unknown storage backend %q", cfg.Storage.Backend)
	}
}
