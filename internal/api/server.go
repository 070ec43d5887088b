// Package api exposes the generate and snapshot endpoints over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/ai"
	"ctr-optimizer/shared/logging"
	"ctr-optimizer/shared/monitoring"
	"ctr-optimizer/shared/snapshot"
)

// SnapshotCache is the part of snapshot.Cache the handlers use.
type SnapshotCache interface {
	Get(ctx context.Context) (*models.Snapshot, error)
	Refresh(ctx context.Context, force bool, refreshDays, windowDays int) (*models.Snapshot, snapshot.Status, error)
}

// Generator runs one generation attempt, see ai.Orchestrator.
type Generator interface {
	Generate(ctx context.Context, prompt string, allowSecondary bool) ai.Result
}

type Options struct {
	Cache     SnapshotCache
	Generator Generator
	// YouTubeConfigured gates snapshot refreshes.
	YouTubeConfigured bool
	Metrics           monitoring.Metrics
	Monitor           *monitoring.Monitor
	CORSOrigins       []string
}

type Server struct {
	router            *gin.Engine
	cache             SnapshotCache
	generator         Generator
	youtubeConfigured bool
	metrics           monitoring.Metrics
}

func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewNoopMetrics()
	}
	if opts.Monitor == nil {
		opts.Monitor = monitoring.NewMonitor()
	}

	router := gin.New()
	router.Use(
		logging.RequestLogger(),
		requestMetrics(opts.Metrics),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
			writeError(c, http.StatusInternalServerError, internalErrorMessage)
		}),
		cors.New(corsConfig(opts.CORSOrigins)),
	)

	s := &Server{
		router:            router,
		cache:             opts.Cache,
		generator:         opts.Generator,
		youtubeConfigured: opts.YouTubeConfigured,
		metrics:           opts.Metrics,
	}
	s.setupRoutes(opts.Monitor)

	return s
}

func (s *Server) setupRoutes(monitor *monitoring.Monitor) {
	apiGroup := s.router.Group("/api", noStore())
	apiGroup.Any("/generate", s.handleGenerate)
	apiGroup.Any("/snapshot", s.handleSnapshot)

	monitoring.NewHealthHandler(monitor).Register(s.router)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func requestMetrics(m monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(route, c.Writer.Status())
	}
}
