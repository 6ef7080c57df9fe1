package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "verso").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "verso",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for Verso.
type metrics struct {
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	renderErrors    *prometheus.CounterVec
	pendingQueries  prometheus.Histogram
	chunksStreamed  prometheus.Counter
	prefetchesTotal prometheus.Counter
	liveConnections prometheus.Gauge
}

// globalMetrics is the singleton metrics instance, created on the first
// call to Prometheus(). Re-registering the same collectors in the default
// registry would panic, so later calls reuse it.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of page renders by path and HTTP status",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Page render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed renders by path",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		pendingQueries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_queries",
			Help:        "Queries per render that missed the server-side await window",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20},
		}),

		chunksStreamed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "chunks_streamed_total",
			Help:        "Total number of out-of-order boundary chunks flushed to clients",
			ConstLabels: config.ConstLabels,
		}),

		prefetchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "prefetches_total",
			Help:        "Total number of navigation prefetch requests served",
			ConstLabels: config.ConstLabels,
		}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Number of open live-update WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for every
// request passing through it.
//
// Metrics collected:
//   - verso_renders_total: Counter of renders by path and status
//   - verso_render_duration_seconds: Histogram of render duration
//   - verso_render_errors_total: Counter of failed renders (status >= 500)
//   - verso_pending_queries: Histogram of late queries per render
//   - verso_chunks_streamed_total: Counter of flushed boundary chunks
//   - verso_prefetches_total: Counter of prefetch requests
//   - verso_live_connections: Gauge of open WebSocket connections
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
//
//	// Expose metrics endpoint
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			m.renderDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.rendersTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
			if status >= http.StatusInternalServerError {
				m.renderErrors.WithLabelValues(path).Inc()
			}
		})
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordPendingQueries records how many queries missed the await window in
// one render. Call it from the streaming handler.
func RecordPendingQueries(count int) {
	if globalMetrics != nil {
		globalMetrics.pendingQueries.Observe(float64(count))
	}
}

// RecordChunk records one boundary chunk flushed to a client.
func RecordChunk() {
	if globalMetrics != nil {
		globalMetrics.chunksStreamed.Inc()
	}
}

// RecordPrefetch records one served prefetch request.
func RecordPrefetch() {
	if globalMetrics != nil {
		globalMetrics.prefetchesTotal.Inc()
	}
}

// RecordLiveConnect records a WebSocket connection opening.
func RecordLiveConnect() {
	if globalMetrics != nil {
		globalMetrics.liveConnections.Inc()
	}
}

// RecordLiveDisconnect records a WebSocket connection closing.
func RecordLiveDisconnect() {
	if globalMetrics != nil {
		globalMetrics.liveConnections.Dec()
	}
}
