package storage

import (
	"context"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryKV lives only as long as the process.
type MemoryKV struct {
	items *cache.Cache
	log   *zap.Logger
}

func NewMemory(log *zap.Logger) *MemoryKV {
	return &MemoryKV{
		items: cache.New(cache.NoExpiration, 0),
		log:   log.With(zap.String("module", "storage"), zap.String("backend", BackendMemory)),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	stored := v.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.items.Set(key, stored, cache.NoExpiration)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *MemoryKV) Close() error {
	m.log.Debug("dropping in-memory profiles", zap.Int("items", m.items.ItemCount()))
	m.items.Flush()
	return nil
}
