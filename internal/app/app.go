// Package app wires configuration into the store, clients, cache, HTTP server and scheduler.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ctr-optimizer/internal/api"
	"ctr-optimizer/shared/ai"
	"ctr-optimizer/shared/config"
	"ctr-optimizer/shared/monitoring"
	"ctr-optimizer/shared/scheduler"
	"ctr-optimizer/shared/snapshot"
	"ctr-optimizer/shared/storage"
	"ctr-optimizer/shared/youtube"
)

// ErrYouTubeNotConfigured is returned by RefreshOnce without a YouTube API key.
var ErrYouTubeNotConfigured = errors.New("YouTube API key is not configured (set YOUTUBE_API_KEY)")

// ErrEphemeralStore is returned by RefreshOnce when the snapshot would only be
// written to process memory and lost on exit.
var ErrEphemeralStore = errors.New("one-shot refresh needs a persistent store (set STORE_BACKEND to file or redis)")

type App struct {
	cfg       *config.Config
	store     storage.Store
	cache     *snapshot.Cache
	monitor   *monitoring.Monitor
	server    *api.Server
	scheduler *scheduler.Scheduler
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log.Info().Str("backend", cfg.Storage.Backend).Msg("initializing")

	metrics := monitoring.NewNoopMetrics()
	if !cfg.Monitoring.MetricsDisabled {
		metrics = monitoring.NewPrometheusMetrics()
	}

	store, err := storage.Open(ctx, storage.Options{
		Backend:   cfg.Storage.Backend,
		Namespace: snapshot.StoreName,
		Dir:       cfg.Storage.Dir,
		RedisURL:  cfg.Storage.RedisURL,
		MemoryMB:  cfg.Storage.MemoryMB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var builder snapshot.SnapshotBuilder
	if cfg.YouTube.APIKey != "" {
		client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to create YouTube client: %w", err)
		}
		builder = snapshot.NewBuilder(client)
		log.Info().Msg("YouTube client initialized")
	} else {
		log.Warn().Msg("YOUTUBE_API_KEY not set, snapshot refresh disabled")
	}
	cache := snapshot.NewCache(store, builder, snapshot.WithMetrics(metrics))

	var primary, secondary ai.Provider
	if cfg.AI.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, "")
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		primary = gemini
		log.Info().Str("model", cfg.AI.GeminiModel).Msg("Gemini provider initialized")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, clients will be told to use local mode")
	}
	if cfg.AI.OpenAIAPIKey != "" {
		secondary = ai.NewOpenAI(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
		log.Info().Str("model", cfg.AI.OpenAIModel).Msg("OpenAI provider initialized")
	}

	monitor := monitoring.NewMonitor()
	server := api.NewServer(api.Options{
		Cache:             cache,
		Generator:         ai.NewOrchestrator(primary, secondary, metrics),
		YouTubeConfigured: builder != nil,
		Metrics:           metrics,
		Monitor:           monitor,
		CORSOrigins:       cfg.Server.CORSOrigins,
	})

	return &App{
		cfg:       cfg,
		store:     store,
		cache:     cache,
		monitor:   monitor,
		server:    server,
		scheduler: scheduler.New(cfg.Schedule, cache, monitor),
	}, nil
}

// Run serves HTTP and, when a schedule is configured, refreshes the snapshot
// in the background. It returns once ctx is cancelled or either part fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Run(ctx, ":"+strconv.Itoa(a.cfg.Server.Port))
	})

	if a.cfg.Schedule != "" && a.cfg.YouTube.APIKey != "" {
		g.Go(func() error {
			err := a.scheduler.Start(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

// RefreshOnce forces one snapshot rebuild. The store must outlive the process.
func (a *App) RefreshOnce(ctx context.Context) error {
	if a.cfg.YouTube.APIKey == "" {
		return ErrYouTubeNotConfigured
	}
	switch a.cfg.Storage.Backend {
	case storage.BackendFile, storage.BackendRedis:
	default:
		return ErrEphemeralStore
	}
	return a.scheduler.RunOnce(ctx, true)
}

func (a *App) Close() error {
	return a.store.Close()
}
