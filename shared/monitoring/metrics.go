package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records the service counters. Use NewNoopMetrics when metrics are disabled.
type Metrics interface {
	ProviderCall(provider, outcome string)
	SnapshotRefresh(status string)
	SnapshotBuild(d time.Duration)
	HTTPRequest(route string, status int)
	Handler() http.Handler
}

type promMetrics struct {
	registry       *prometheus.Registry
	providerCalls  *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	buildDurations prometheus.Histogram
}

// NewPrometheusMetrics registers the counters on a private registry, so that
// several instances (one per test, say) never collide.
func NewPrometheusMetrics() Metrics {
	reg := prometheus.NewRegistry()
	m := &promMetrics{
		registry: reg,
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctr_provider_calls_total",
			Help: "Generation provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctr_snapshot_refresh_total",
			Help: "Snapshot refresh requests by resulting status.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctr_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		buildDurations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ctr_snapshot_build_duration_seconds",
			Help:    "Time spent building a snapshot from the YouTube API.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}),
	}
	reg.MustRegister(m.providerCalls, m.refreshes, m.httpRequests, m.buildDurations)
	return m
}

func (m *promMetrics) ProviderCall(provider, outcome string) {
	m.providerCalls.WithLabelValues(provider, outcome).Inc()
}

func (m *promMetrics) SnapshotRefresh(status string) {
	m.refreshes.WithLabelValues(status).Inc()
}

func (m *promMetrics) SnapshotBuild(d time.Duration) {
	m.buildDurations.Observe(d.Seconds())
}

func (m *promMetrics) HTTPRequest(route string, status int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *promMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type noopMetrics struct{}

func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) ProviderCall(string, string) {}
func (noopMetrics) SnapshotRefresh(string) {}
func (noopMetrics) SnapshotBuild(time.Duration) {}
func (noopMetrics) HTTPRequest(string, int) {}
func (noopMetrics) Handler() http.Handler { return http.NotFoundHandler() }
