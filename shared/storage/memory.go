package storage

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
)

const defaultMemoryMB = 64

// MemoryStore keeps values in a freecache segment. Contents are lost on restart.
type MemoryStore struct {
	cache     *freecache.Cache
	namespace string
}

func NewMemoryStore(namespace string, sizeMB int) *MemoryStore {
	if sizeMB <= 0 {
		sizeMB = defaultMemoryMB
	}
	return &MemoryStore{
		cache:     freecache.NewCache(sizeMB * 1024 * 1024),
		namespace: namespace,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := m.cache.Get([]byte(namespaced(m.namespace, key)))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

// Set stores value without expiry.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	return m.cache.Set([]byte(namespaced(m.namespace, key)), value, 0)
}

func (m *MemoryStore) Close() error {
	m.cache.Clear()
	return nil
}
