// Package storage provides the key/value blob store that holds the trend snapshot.
// Values are opaque bytes; callers encode them with SetJSON/GetJSON.
package storage

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat get/set key-value service. Set fully replaces any previous value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Namespace string
	Dir       string
	RedisURL  string
	MemoryMB  int
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(opts.Namespace, opts.MemoryMB), nil
	case BackendFile:
		return NewFileStore(opts.Dir, opts.Namespace)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.Namespace)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// GetJSON decodes the value under key into v. found is false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

func namespaced(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
