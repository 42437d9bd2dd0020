// Package metrics defines an exporter abstraction for cache
// statistics, with Prometheus and OpenTelemetry implementations.
package metrics

import (
	"time"
)

// Exporter defines the interface for cache metrics exporters.
// This abstraction allows supporting multiple observability systems.
type Exporter interface {
	// ExportStats exports the current cache statistics.
	ExportStats(stats Stats, labels Labels) error

	// RecordCacheOperation records individual cache operations with timing.
	RecordCacheOperation(operation Operation, duration time.Duration, labels Labels) error

	// IncrementCounter increments a named counter with labels.
	IncrementCounter(name string, labels Labels) error

	// RecordHistogram records a value in a named histogram.
	RecordHistogram(name string, value float64, labels Labels) error

	// SetGauge sets a gauge value.
	SetGauge(name string, value float64, labels Labels) error

	// Close shuts down the exporter and flushes any pending metrics.
	Close() error
}

// Labels represents key-value pairs for metric labels/tags.
type Labels map[string]string

// Stats defines the cache statistics that can be exported. This lets
// the metrics package work with any stats implementation.
type Stats interface {
	Calls() int64
	Hits() int64
	LateHits() int64
	Evictions() int64
	Invalidations() int64
	KeyCount() int64
	InFlight() int64
	HitRate() float64
}

// Operation represents different cache operations for metrics.
type Operation string

const (
	OperationGet     Operation = "get"
	OperationCompute Operation = "compute"
	OperationEvict   Operation = "evict"
)

// MetricNames defines standard metric names used across exporters.
type MetricNames struct {
	// Counters
	CacheCallsTotal         string
	CacheHitsTotal          string
	CacheLateHitsTotal      string
	CacheEvictionsTotal     string
	CacheInvalidationsTotal string
	CacheOperationsTotal    string

	// Histograms
	CacheOperationDuration string

	// Gauges
	CacheKeysCount        string
	CacheInFlightRequests string
	CacheHitRate          string
}

// DefaultMetricNames returns the default metric names with proper namespacing.
func DefaultMetricNames() MetricNames {
	return MetricNames{
		CacheCallsTotal:         "memocache_calls_total",
		CacheHitsTotal:          "memocache_hits_total",
		CacheLateHitsTotal:      "memocache_late_hits_total",
		CacheEvictionsTotal:     "memocache_evictions_total",
		CacheInvalidationsTotal: "memocache_invalidations_total",
		CacheOperationsTotal:    "memocache_operations_total",
		CacheOperationDuration:  "memocache_operation_duration_seconds",
		CacheKeysCount:          "memocache_keys_count",
		CacheInFlightRequests:   "memocache_inflight_requests",
		CacheHitRate:            "memocache_hit_rate",
	}
}

// Config holds configuration for metrics exporters.
type Config struct {
	// Enabled determines whether metrics collection is enabled.
	Enabled bool

	// Namespace is prepended to all metric names.
	Namespace string

	// Labels are default labels applied to all metrics.
	Labels Labels

	// MetricNames allows customizing metric names.
	MetricNames MetricNames

	// ReportingInterval determines how often to export stats (for push-based systems).
	ReportingInterval time.Duration

	// IncludeDetailedTimings enables detailed operation timing metrics.
	IncludeDetailedTimings bool
}

// NewDefaultConfig creates a default metrics configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Enabled:                true,
		Namespace:              "memocache",
		Labels:                 make(Labels),
		MetricNames:            DefaultMetricNames(),
		ReportingInterval:      30 * time.Second,
		IncludeDetailedTimings: false,
	}
}

// WithNamespace sets the metrics namespace.
func (c *Config) WithNamespace(namespace string) *Config {
	c.Namespace = namespace
	return c
}

// WithLabels adds default labels to all metrics.
func (c *Config) WithLabels(labels Labels) *Config {
	for k, v := range labels {
		c.Labels[k] = v
	}
	return c
}

// WithReportingInterval sets the reporting interval for push-based systems.
func (c *Config) WithReportingInterval(interval time.Duration) *Config {
	c.ReportingInterval = interval
	return c
}

// WithDetailedTimings enables detailed operation timing metrics.
func (c *Config) WithDetailedTimings(enabled bool) *Config {
	c.IncludeDetailedTimings = enabled
	return c
}

// statsSnapshot captures monotonic counter values so exporters can
// publish deltas between successive ExportStats calls instead of
// re-adding running totals.
type statsSnapshot struct {
	calls         int64
	hits          int64
	lateHits      int64
	evictions     int64
	invalidations int64
}

// deltaFrom advances the snapshot to the current stats and returns the
// increments since the previous export.
func (s *statsSnapshot) deltaFrom(stats Stats) statsSnapshot {
	d := statsSnapshot{
		calls:         stats.Calls() - s.calls,
		hits:          stats.Hits() - s.hits,
		lateHits:      stats.LateHits() - s.lateHits,
		evictions:     stats.Evictions() - s.evictions,
		invalidations: stats.Invalidations() - s.invalidations,
	}
	s.calls += d.calls
	s.hits += d.hits
	s.lateHits += d.lateHits
	s.evictions += d.evictions
	s.invalidations += d.invalidations
	return d
}

// MultiExporter allows using multiple exporters simultaneously.
type MultiExporter struct {
	exporters []Exporter
}

// NewMultiExporter creates an exporter that writes to multiple backends.
func NewMultiExporter(exporters ...Exporter) *MultiExporter {
	return &MultiExporter{
		exporters: exporters,
	}
}

// ExportStats exports to all configured exporters.
func (m *MultiExporter) ExportStats(stats Stats, labels Labels) error {
	for _, exporter := range m.exporters {
		if err := exporter.ExportStats(stats, labels); err != nil {
			return err
		}
	}
	return nil
}

// RecordCacheOperation records to all configured exporters.
func (m *MultiExporter) RecordCacheOperation(operation Operation, duration time.Duration, labels Labels) error {
	for _, exporter := range m.exporters {
		if err := exporter.RecordCacheOperation(operation, duration, labels); err != nil {
			return err
		}
	}
	return nil
}

// IncrementCounter increments on all configured exporters.
func (m *MultiExporter) IncrementCounter(name string, labels Labels) error {
	for _, exporter := range m.exporters {
		if err := exporter.IncrementCounter(name, labels); err != nil {
			return err
		}
	}
	return nil
}

// RecordHistogram records to all configured exporters.
func (m *MultiExporter) RecordHistogram(name string, value float64, labels Labels) error {
	for _, exporter := range m.exporters {
		if err := exporter.RecordHistogram(name, value, labels); err != nil {
			return err
		}
	}
	return nil
}

// SetGauge sets on all configured exporters.
func (m *MultiExporter) SetGauge(name string, value float64, labels Labels) error {
	for _, exporter := range m.exporters {
		if err := exporter.SetGauge(name, value, labels); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all configured exporters.
func (m *MultiExporter) Close() error {
	for _, exporter := range m.exporters {
		if err := exporter.Close(); err != nil {
			return err
		}
	}
	return nil
}

// NoOpExporter provides a no-op implementation for when metrics are disabled.
type NoOpExporter struct{}

// NewNoOpExporter creates a no-op exporter.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

// ExportStats does nothing.
func (n *NoOpExporter) ExportStats(Stats, Labels) error { return nil }

// RecordCacheOperation does nothing.
func (n *NoOpExporter) RecordCacheOperation(Operation, time.Duration, Labels) error { return nil }

// IncrementCounter does nothing.
func (n *NoOpExporter) IncrementCounter(string, Labels) error { return nil }

// RecordHistogram does nothing.
func (n *NoOpExporter) RecordHistogram(string, float64, Labels) error { return nil }

// SetGauge does nothing.
func (n *NoOpExporter) SetGauge(string, float64, Labels) error { return nil }

// Close does nothing.
func (n *NoOpExporter) Close() error { return nil }

// Ensure interfaces are implemented
var (
	_ Exporter = (*MultiExporter)(nil)
	_ Exporter = (*NoOpExporter)(nil)
)
