package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	DatasetsIngested   prometheus.Counter
	CommentsNormalized prometheus.Counter
	BatchesDelivered   prometheus.Counter
	BatchesDropped     prometheus.Counter
	EventsLogged       prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Singleton to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	datasetsIngested := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_ingested_total",
			Help:      "Total number of discussion datasets ingested",
		},
	)

	commentsNormalized := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_normalized_total",
			Help:      "Total number of comment rows normalized",
		},
	)

	batchesDelivered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_batches_delivered_total",
			Help:      "Total number of activity event batches delivered",
		},
	)

	batchesDropped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_batches_dropped_total",
			Help:      "Total number of activity event batches dropped after delivery failure",
		},
	)

	eventsLogged := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_logged_total",
			Help:      "Total number of activity events appended to the log",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		datasetsIngested,
		commentsNormalized,
		batchesDelivered,
		batchesDropped,
		eventsLogged,
	)

	globalCollector = &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		DatasetsIngested:   datasetsIngested,
		CommentsNormalized: commentsNormalized,
		BatchesDelivered:   batchesDelivered,
		BatchesDropped:     batchesDropped,
		EventsLogged:       eventsLogged,
	}
	return globalCollector
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
