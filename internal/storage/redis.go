package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisKV shares profiles between several API instances.
type RedisKV struct {
	client *redis.Client
	log    *zap.Logger
}

func OpenRedis(ctx context.Context, cfg RedisConfig, log *zap.Logger) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("OpenRedis(): failed to connect to %s: %w", cfg.Addr, err)
	}

	return NewRedis(client, log), nil
}

// NewRedis wraps an already configured client.
func NewRedis(client *redis.Client, log *zap.Logger) *RedisKV {
	return &RedisKV{
		client: client,
		log:    log.With(zap.String("module", "storage"), zap.String("backend", BackendRedis)),
	}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisKV) Close() error {
	if err := r.client.Close(); err != nil {
		r.log.Error("failed to close redis client", zap.Error(err))
		return err
	}
	return nil
}
