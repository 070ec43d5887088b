package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps values in Redis under "<namespace>:<key>" with no TTL.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStore(ctx context.Context, redisURL, namespace string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("redis backend requires REDIS_URL")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("redis store connected")
	return &RedisStore{rdb: rdb, namespace: namespace}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, namespaced(r.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, namespaced(r.namespace, key), value, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
