package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/monitoring"
	"ctr-optimizer/shared/snapshot"
)

// Refresher is the snapshot cache operation the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, force bool, refreshDays, windowDays int) (*models.Snapshot, snapshot.Status, error)
}

// Scheduler runs snapshot refreshes on a cron schedule and reports each run to the monitor.
type Scheduler struct {
	schedule  string
	refresher Refresher
	monitor   *monitoring.Monitor
	cron      *cron.Cron
}

func New(schedule string, refresher Refresher, monitor *monitoring.Monitor) *Scheduler {
	return &Scheduler{
		schedule:  schedule,
		refresher: refresher,
		monitor:   monitor,
		// Prevent overlapping runs
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start blocks until ctx is cancelled. Scheduled runs are not forced, so the
// cache throttle still applies to them.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		return errors.New("refresh schedule is empty")
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(ctx, false); err != nil {
			log.Error().Err(err).Msg("scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Info().Str("schedule", s.schedule).Msg("refresh scheduler started")
	s.cron.Start()

	<-ctx.Done()
	log.Info().Msg("refresh scheduler stopped")
	<-s.cron.Stop().Done()
	return ctx.Err()
}

// RunOnce refreshes the snapshot with the default windows and records the outcome.
func (s *Scheduler) RunOnce(ctx context.Context, force bool) error {
	start := time.Now()
	log.Info().Bool("force", force).Msg("starting snapshot refresh")

	snap, status, err := s.refresher.Refresh(ctx, force, snapshot.DefaultRefreshDays, snapshot.DefaultWindowDays)
	duration := time.Since(start)
	if err != nil {
		s.monitor.RecordFailure(err, duration)
		return fmt.Errorf("snapshot refresh failed: %w", err)
	}

	s.monitor.RecordSuccess(fmt.Sprintf("%s, %d candidates", status, snap.TotalCandidates), duration)
	return nil
}
