package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stateview-go/stateview/pkg/host"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "stateview").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
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
		Namespace: "stateview",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for event dispatch.
type metrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	eventErrors   *prometheus.CounterVec
}

// metricsByRegistry holds one metrics set per registry, so repeated
// middleware construction never re-registers. For a given registry the
// first construction's namespace, subsystem, and labels win.
var (
	metricsByRegistry = make(map[prometheus.Registerer]*metrics)
	metricsMu         sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of dispatched component events",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of failed event handlers",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for every
// dispatched event.
//
// Metrics collected:
//   - stateview_events_total: counter of events by component and status
//   - stateview_event_duration_seconds: histogram of handler duration
//   - stateview_event_errors_total: counter of failed handlers
//
// Metrics are registered once per registry and shared by every middleware
// instance built on that registry; naming options apply only on the first
// construction for a registry.
//
// Example:
//
//	cfg := host.DefaultConfig()
//	cfg.Middleware = []host.Middleware{
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	}
func Prometheus(opts ...MetricsOption) host.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	metricsMu.Lock()
	m, ok := metricsByRegistry[config.Registry]
	if !ok {
		m = initMetrics(config)
		metricsByRegistry[config.Registry] = m
	}
	metricsMu.Unlock()

	return host.MiddlewareFunc(func(ctx host.Ctx, next func() error) error {
		component := ctx.Component()
		start := time.Now()

		err := next()

		m.eventDuration.WithLabelValues(component).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(component).Inc()
		}
		m.eventsTotal.WithLabelValues(component, status).Inc()

		return err
	})
}
