package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Monitor remembers the outcome of the last background snapshot refresh.
type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
	now            func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = m.now()
	m.lastSummary = summary
	m.mu.Unlock()

	log.Info().Str("summary", summary).Dur("duration", duration).Msg("refresh completed")
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = m.now()
	m.lastSummary = err.Error()
	m.mu.Unlock()

	log.Error().Err(err).Dur("duration", duration).Msg("refresh failed")
}

// IsHealthy is true until a refresh fails, and again after the next success.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return "No runs yet"
	}

	if m.lastRunSuccess {
		return fmt.Sprintf("Last refresh: %s (%s)", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
	}
	return fmt.Sprintf("Last refresh failed: %s (%s)", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
}
