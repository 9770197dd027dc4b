// Package telemetry exposes the feed service's Prometheus metrics.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	inframetrics "github.com/jonesrussell/alsahih/infrastructure/metrics"
)

const namespace = "alsahih"

// Feed outcome labels.
const (
	FeedOK            = "ok"
	FeedMissingKey    = "missing_key"
	FeedUpstreamError = "upstream_error"
	FeedCircuitOpen   = "circuit_open"
	FeedDegraded      = "degraded"
)

// Metrics holds the service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	FeedResolutions  *prometheus.CounterVec
	FeedItems        prometheus.Histogram
	BreakerState     prometheus.Gauge

	// HTTP instruments the service's own routes.
	HTTP *inframetrics.HTTPMetrics
}

// New registers the metrics, plus Go runtime and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTP:     inframetrics.NewHTTPMetrics(reg, namespace),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "youtube_requests_total",
			Help:      "YouTube Data API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "youtube_request_duration_seconds",
			Help:      "YouTube Data API request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		FeedResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_resolutions_total",
			Help:      "Video feed requests by outcome",
		}, []string{"outcome"}),
		FeedItems: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_items",
			Help:      "Number of items returned per successful feed request",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "youtube_circuit_state",
			Help:      "YouTube circuit breaker state (0 closed, 1 open, 2 half-open)",
		}),
	}
}

// ObserveUpstream records one upstream request attempt.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveFeed records a feed request outcome; items is only observed for FeedOK.
func (m *Metrics) ObserveFeed(outcome string, items int) {
	m.FeedResolutions.WithLabelValues(outcome).Inc()
	if outcome == FeedOK {
		m.FeedItems.Observe(float64(items))
	}
}

// SetBreakerState is suitable as circuitbreaker.Config.OnStateChange.
func (m *Metrics) SetBreakerState(_, to circuitbreaker.State) {
	m.BreakerState.Set(float64(to))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
