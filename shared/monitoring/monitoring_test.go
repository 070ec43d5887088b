package monitoring

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor(t *testing.T) {
	m := NewMonitor()
	m.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

	assert.True(t, m.IsHealthy())
	assert.Equal(t, "No runs yet", m.GetStatusSummary())

	m.RecordFailure(errors.New("quota exceeded"), time.Second)
	assert.False(t, m.IsHealthy())
	assert.Equal(t, "Last refresh failed: Oct 17 09:30 (quota exceeded)", m.GetStatusSummary())

	m.RecordSuccess("updated, 42 candidates", time.Second)
	assert.True(t, m.IsHealthy())
	assert.Equal(t, "Last refresh: Oct 17 09:30 (updated, 42 candidates)", m.GetStatusSummary())
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMonitor()
	r := gin.New()
	NewHealthHandler(m).Register(r)

	get := func(path string) (int, string) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		body, _ := io.ReadAll(w.Body)
		return w.Code, string(body)
	}

	code, body := get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK - No runs yet", body)

	m.RecordFailure(errors.New("boom"), 0)
	code, body = get("/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.True(t, strings.HasPrefix(body, "Service unhealthy - Last refresh failed"))

	code, body = get("/status")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "boom")
}

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics()
	m.ProviderCall("GEMINI", "success")
	m.SnapshotRefresh("throttled")
	m.SnapshotBuild(2 * time.Second)
	m.HTTPRequest("/api/generate", 409)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `ctr_provider_calls_total{outcome="success",provider="GEMINI"} 1`)
	assert.Contains(t, body, `ctr_snapshot_refresh_total{status="throttled"} 1`)
	assert.Contains(t, body, `ctr_http_requests_total{route="/api/generate",status="409"} 1`)
	assert.Contains(t, body, "ctr_snapshot_build_duration_seconds_count 1")

	// a second instance must not panic on duplicate registration
	assert.NotNil(t, NewPrometheusMetrics())
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()
	m.ProviderCall("x", "y")
	m.SnapshotRefresh("z")
	m.SnapshotBuild(time.Second)
	m.HTTPRequest("/", 200)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
