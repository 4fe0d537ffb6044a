package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a byte-valued key-value store. Set overwrites, last write wins.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op when the key is absent.
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Backend    string
	SQLitePath string
	Redis      RedisConfig
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (KV, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, cfg.SQLitePath, log)
	case BackendMemory:
		return NewMemory(log), nil
	case BackendRedis:
		return OpenRedis(ctx, cfg.Redis, log)
	default:
		return nil, fmt.Errorf("storage.Open(): unknown backend %q", cfg.Backend)
	}
}
