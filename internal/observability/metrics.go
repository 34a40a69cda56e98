package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the dashboard.
type Metrics struct {
	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: query={region,magnitude}, outcome={success,status_error,transport_error,decode_error}
	UpstreamDuration *prometheus.HistogramVec // labels: query
	FeaturesSkipped  prometheus.Counter

	// Rendering metrics.
	ChartsRendered *prometheus.CounterVec // labels: kind={chart,empty,error}

	// Publishing metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Inbound HTTP metrics.
	HTTPRequests *prometheus.CounterVec // labels: route, status
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.FeaturesSkipped,
		m.ChartsRendered,
		m.EventsPublished,
		m.PublishErrors,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "upstream_requests_total",
			Help:      "USGS API requests by query kind and outcome.",
		}, []string{"query", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "upstream_request_duration_seconds",
			Help:      "USGS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"query"}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "upstream_features_skipped_total",
			Help:      "Upstream features dropped because they could not be decoded.",
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "charts_rendered_total",
			Help:      "PNG charts rendered by kind (chart, empty placeholder, error placeholder).",
		}, []string{"kind"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "events_published_total",
			Help:      "Earthquake features published to the event topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "publish_errors_total",
			Help:      "Failed attempts to publish a feed to the event topic.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
