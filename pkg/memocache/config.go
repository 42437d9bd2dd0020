package memocache

import (
	"time"

	"github.com/reunanen/lru-timday/pkg/metrics"
)

// DefaultCapacity is the capacity used by NewDefaultConfig.
const DefaultCapacity = 1024

// MetricsConfig holds metrics exporter configuration.
type MetricsConfig struct {
	// Exporter is the metrics exporter to use.
	Exporter metrics.Exporter

	// Enabled determines whether metrics collection is enabled.
	Enabled bool

	// CacheName is the name label applied to all metrics for this cache instance.
	CacheName string

	// ReportingInterval determines how often to export stats automatically.
	// Set to 0 to disable automatic reporting.
	ReportingInterval time.Duration

	// Labels are additional labels applied to all metrics.
	Labels metrics.Labels
}

// Config defines the configuration options for a Cache instance.
type Config[K comparable, V any] struct {
	// Capacity sets the maximum number of entries in the cache.
	// Must be positive; fixed for the lifetime of the cache.
	// Default: DefaultCapacity.
	Capacity int

	// Hooks defines event callbacks for cache operations.
	Hooks *Hooks[K, V]

	// Metrics holds metrics exporter configuration.
	// If nil, no metrics will be exported.
	Metrics *MetricsConfig

	// TrackEvaluations enables per-key evaluation counters on the
	// underlying store, for detecting unexpected re-evaluation in
	// tests. Off by default; it costs a map write per evaluation.
	TrackEvaluations bool
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig[K comparable, V any]() *Config[K, V] {
	return &Config[K, V]{
		Capacity: DefaultCapacity,
		Hooks:    &Hooks[K, V]{},
	}
}

// WithCapacity sets the maximum number of cache entries.
func (c *Config[K, V]) WithCapacity(capacity int) *Config[K, V] {
	c.Capacity = capacity
	return c
}

// WithHooks sets the event hooks for cache operations.
func (c *Config[K, V]) WithHooks(hooks *Hooks[K, V]) *Config[K, V] {
	c.Hooks = hooks
	return c
}

// WithEvaluationTracking enables per-key evaluation counters.
func (c *Config[K, V]) WithEvaluationTracking(enabled bool) *Config[K, V] {
	c.TrackEvaluations = enabled
	return c
}

// WithMetrics configures cache metrics export.
func (c *Config[K, V]) WithMetrics(metricsConfig *MetricsConfig) *Config[K, V] {
	c.Metrics = metricsConfig
	return c
}

// WithMetricsExporter configures metrics with the given exporter.
func (c *Config[K, V]) WithMetricsExporter(exporter metrics.Exporter, cacheName string) *Config[K, V] {
	c.Metrics = &MetricsConfig{
		Exporter:          exporter,
		Enabled:           true,
		CacheName:         cacheName,
		ReportingInterval: 30 * time.Second,
		Labels:            make(metrics.Labels),
	}
	return c
}

// WithMetricsLabels adds labels to the metrics configuration.
func (c *Config[K, V]) WithMetricsLabels(labels metrics.Labels) *Config[K, V] {
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{
			Labels: make(metrics.Labels),
		}
	}
	for k, v := range labels {
		c.Metrics.Labels[k] = v
	}
	return c
}

// WithMetricsReportingInterval sets the metrics reporting interval.
func (c *Config[K, V]) WithMetricsReportingInterval(interval time.Duration) *Config[K, V] {
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{
			Labels: make(metrics.Labels),
		}
	}
	c.Metrics.ReportingInterval = interval
	return c
}
