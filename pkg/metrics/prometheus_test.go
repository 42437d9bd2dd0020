package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestPrometheusExporter(t *testing.T, config *Config) (*PrometheusExporter, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	exporter, err := NewPrometheusExporter(config, &PrometheusConfig{Registry: registry})
	if err != nil {
		t.Fatalf("NewPrometheusExporter failed: %v", err)
	}
	return exporter, registry
}

func TestPrometheusExportStats(t *testing.T) {
	exporter, registry := newTestPrometheusExporter(t, nil)
	labels := Labels{"cache_name": "test"}

	stats := &fakeStats{calls: 10, hits: 7, lateHits: 1, evictions: 2, invalidations: 1, keyCount: 4, inFlight: 0}
	if err := exporter.ExportStats(stats, labels); err != nil {
		t.Fatalf("ExportStats failed: %v", err)
	}

	promLabels := prometheus.Labels{"cache_name": "test"}
	if got := testutil.ToFloat64(exporter.callsTotal.With(promLabels)); got != 10 {
		t.Fatalf("expected 10 calls, got %f", got)
	}
	if got := testutil.ToFloat64(exporter.hitsTotal.With(promLabels)); got != 7 {
		t.Fatalf("expected 7 hits, got %f", got)
	}
	if got := testutil.ToFloat64(exporter.keysCount.With(promLabels)); got != 4 {
		t.Fatalf("expected 4 keys, got %f", got)
	}
	if got := testutil.ToFloat64(exporter.hitRate.With(promLabels)); got != 80 {
		t.Fatalf("expected 80%% hit rate, got %f", got)
	}

	// Re-exporting unchanged stats must not double-count the counters
	if err := exporter.ExportStats(stats, labels); err != nil {
		t.Fatalf("second ExportStats failed: %v", err)
	}
	if got := testutil.ToFloat64(exporter.callsTotal.With(promLabels)); got != 10 {
		t.Fatalf("expected counters unchanged at 10, got %f", got)
	}

	count, err := testutil.GatherAndCount(registry)
	if err != nil {
		t.Fatalf("gathering failed: %v", err)
	}
	if count == 0 {
		t.Fatal("expected registered metrics")
	}
}

func TestPrometheusRecordCacheOperation(t *testing.T) {
	exporter, _ := newTestPrometheusExporter(t, NewDefaultConfig().WithDetailedTimings(true))
	labels := Labels{"cache_name": "test"}

	if err := exporter.RecordCacheOperation(OperationGet, 5*time.Millisecond, labels); err != nil {
		t.Fatalf("RecordCacheOperation failed: %v", err)
	}
	if err := exporter.RecordCacheOperation(OperationGet, time.Millisecond, labels); err != nil {
		t.Fatalf("RecordCacheOperation failed: %v", err)
	}
	if err := exporter.RecordCacheOperation(OperationCompute, time.Second, labels); err != nil {
		t.Fatalf("RecordCacheOperation failed: %v", err)
	}

	getLabels := prometheus.Labels{"cache_name": "test", "operation": "get"}
	if got := testutil.ToFloat64(exporter.operationsTotal.With(getLabels)); got != 2 {
		t.Fatalf("expected 2 get operations, got %f", got)
	}

	computeLabels := prometheus.Labels{"cache_name": "test", "operation": "compute"}
	if got := testutil.ToFloat64(exporter.operationsTotal.With(computeLabels)); got != 1 {
		t.Fatalf("expected 1 compute operation, got %f", got)
	}
}

func TestPrometheusCustomMetrics(t *testing.T) {
	exporter, _ := newTestPrometheusExporter(t, nil)
	labels := Labels{"source": "test"}

	if err := exporter.IncrementCounter("custom_events_total", labels); err != nil {
		t.Fatalf("IncrementCounter failed: %v", err)
	}
	if err := exporter.IncrementCounter("custom_events_total", labels); err != nil {
		t.Fatalf("IncrementCounter failed: %v", err)
	}
	if err := exporter.RecordHistogram("custom_latency_seconds", 0.25, labels); err != nil {
		t.Fatalf("RecordHistogram failed: %v", err)
	}
	if err := exporter.SetGauge("custom_depth", 12, labels); err != nil {
		t.Fatalf("SetGauge failed: %v", err)
	}

	promLabels := prometheus.Labels{"source": "test"}
	if got := testutil.ToFloat64(exporter.customCounters["custom_events_total"].With(promLabels)); got != 2 {
		t.Fatalf("expected counter at 2, got %f", got)
	}
	if got := testutil.ToFloat64(exporter.customGauges["custom_depth"].With(promLabels)); got != 12 {
		t.Fatalf("expected gauge at 12, got %f", got)
	}
}

func TestPrometheusClose(t *testing.T) {
	exporter, _ := newTestPrometheusExporter(t, nil)
	if err := exporter.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
