package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/monitoring"
	"ctr-optimizer/shared/storage"
)

const (
	StoreName = "ctr_optimizer"
	StoreKey  = "youtube_snapshot_v1"

	// ThrottleWindow is the minimum snapshot age before a non-forced refresh rebuilds.
	ThrottleWindow = 6 * time.Hour
)

type Status string

const (
	StatusEmpty     Status = "empty"
	StatusReady     Status = "ready"
	StatusThrottled Status = "throttled"
	StatusUpdated   Status = "updated"
)

// ErrNoBuilder is returned by Refresh when the cache was created without a builder.
var ErrNoBuilder = errors.New("snapshot builder not configured")

// SnapshotBuilder produces a fresh snapshot.
type SnapshotBuilder interface {
	Build(ctx context.Context, refreshDays, windowDays int) (*models.Snapshot, error)
}

// Cache keeps the single live snapshot in a store. The throttle is a cooldown
// check, not a lock: concurrent refreshes may both rebuild and the last write wins.
type Cache struct {
	store   storage.Store
	builder SnapshotBuilder
	metrics monitoring.Metrics
	now     func() time.Time
}

type CacheOption func(*Cache)

func WithMetrics(m monitoring.Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache wires a store and builder. builder may be nil when no YouTube key is
// configured; Get still works and Refresh returns ErrNoBuilder.
func NewCache(store storage.Store, builder SnapshotBuilder, opts ...CacheOption) *Cache {
	c := &Cache{
		store:   store,
		builder: builder,
		metrics: monitoring.NewNoopMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored snapshot, or nil when none exists yet.
func (c *Cache) Get(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	found, err := storage.GetJSON(ctx, c.store, StoreKey, &snap)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &snap, nil
}

// Refresh rebuilds and stores the snapshot unless force is false and the stored
// one is younger than ThrottleWindow, in which case it is returned untouched.
func (c *Cache) Refresh(ctx context.Context, force bool, refreshDays, windowDays int) (*models.Snapshot, Status, error) {
	if !force {
		existing, err := c.Get(ctx)
		if err != nil {
			return nil, "", err
		}
		if existing != nil {
			age := c.now().Sub(existing.GeneratedAt)
			if age < ThrottleWindow {
				log.Info().Dur("age", age).Msg("snapshot refresh throttled")
				c.metrics.SnapshotRefresh(string(StatusThrottled))
				return existing, StatusThrottled, nil
			}
		}
	}

	if c.builder == nil {
		return nil, "", ErrNoBuilder
	}

	start := time.Now()
	snap, err := c.builder.Build(ctx, refreshDays, windowDays)
	c.metrics.SnapshotBuild(time.Since(start))
	if err != nil {
		c.metrics.SnapshotRefresh("error")
		return nil, "", fmt.Errorf("failed to build snapshot: %w", err)
	}

	if err := storage.SetJSON(ctx, c.store, StoreKey, snap); err != nil {
		c.metrics.SnapshotRefresh("error")
		return nil, "", fmt.Errorf("failed to store snapshot: %w", err)
	}

	c.metrics.SnapshotRefresh(string(StatusUpdated))
	return snap, StatusUpdated, nil
}
