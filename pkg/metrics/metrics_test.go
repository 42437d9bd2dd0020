package metrics

import (
	"errors"
	"testing"
	"time"
)

// fakeStats implements Stats with fixed values.
type fakeStats struct {
	calls, hits, lateHits, evictions, invalidations, keyCount, inFlight int64
}

func (f *fakeStats) Calls() int64         { return f.calls }
func (f *fakeStats) Hits() int64          { return f.hits }
func (f *fakeStats) LateHits() int64      { return f.lateHits }
func (f *fakeStats) Evictions() int64     { return f.evictions }
func (f *fakeStats) Invalidations() int64 { return f.invalidations }
func (f *fakeStats) KeyCount() int64      { return f.keyCount }
func (f *fakeStats) InFlight() int64      { return f.inFlight }
func (f *fakeStats) HitRate() float64 {
	if f.calls == 0 {
		return 0
	}
	return float64(f.hits+f.lateHits) / float64(f.calls) * 100
}

// recordingExporter counts calls for MultiExporter tests.
type recordingExporter struct {
	exports    int
	operations int
	counters   int
	histograms int
	gauges     int
	closes     int
	err        error
}

func (r *recordingExporter) ExportStats(Stats, Labels) error {
	r.exports++
	return r.err
}

func (r *recordingExporter) RecordCacheOperation(Operation, time.Duration, Labels) error {
	r.operations++
	return r.err
}

func (r *recordingExporter) IncrementCounter(string, Labels) error {
	r.counters++
	return r.err
}

func (r *recordingExporter) RecordHistogram(string, float64, Labels) error {
	r.histograms++
	return r.err
}

func (r *recordingExporter) SetGauge(string, float64, Labels) error {
	r.gauges++
	return r.err
}

func (r *recordingExporter) Close() error {
	r.closes++
	return r.err
}

func TestStatsSnapshotDelta(t *testing.T) {
	var snap statsSnapshot

	stats := &fakeStats{calls: 10, hits: 6, lateHits: 1, evictions: 2, invalidations: 1}
	d := snap.deltaFrom(stats)
	if d.calls != 10 || d.hits != 6 || d.lateHits != 1 || d.evictions != 2 || d.invalidations != 1 {
		t.Fatalf("first delta should equal totals, got %+v", d)
	}

	// No change since last export: all deltas zero
	d = snap.deltaFrom(stats)
	if d.calls != 0 || d.hits != 0 || d.lateHits != 0 || d.evictions != 0 || d.invalidations != 0 {
		t.Fatalf("expected zero delta on repeat export, got %+v", d)
	}

	stats.calls = 15
	stats.hits = 9
	d = snap.deltaFrom(stats)
	if d.calls != 5 || d.hits != 3 {
		t.Fatalf("expected incremental delta calls=5 hits=3, got %+v", d)
	}
}

func TestDefaultMetricNames(t *testing.T) {
	names := DefaultMetricNames()
	if names.CacheCallsTotal != "memocache_calls_total" {
		t.Fatalf("unexpected calls metric name %q", names.CacheCallsTotal)
	}
	if names.CacheLateHitsTotal != "memocache_late_hits_total" {
		t.Fatalf("unexpected late-hits metric name %q", names.CacheLateHitsTotal)
	}
	if names.CacheOperationDuration != "memocache_operation_duration_seconds" {
		t.Fatalf("unexpected duration metric name %q", names.CacheOperationDuration)
	}
}

func TestConfigChaining(t *testing.T) {
	config := NewDefaultConfig().
		WithNamespace("myapp").
		WithLabels(Labels{"env": "prod"}).
		WithReportingInterval(time.Minute).
		WithDetailedTimings(true)

	if config.Namespace != "myapp" {
		t.Fatalf("expected namespace myapp, got %q", config.Namespace)
	}
	if config.Labels["env"] != "prod" {
		t.Fatalf("expected env label, got %v", config.Labels)
	}
	if config.ReportingInterval != time.Minute {
		t.Fatalf("expected 1m interval, got %v", config.ReportingInterval)
	}
	if !config.IncludeDetailedTimings {
		t.Fatal("expected detailed timings enabled")
	}
}

func TestMultiExporter(t *testing.T) {
	a := &recordingExporter{}
	b := &recordingExporter{}
	multi := NewMultiExporter(a, b)

	stats := &fakeStats{calls: 1}
	if err := multi.ExportStats(stats, nil); err != nil {
		t.Fatalf("ExportStats failed: %v", err)
	}
	if err := multi.RecordCacheOperation(OperationGet, time.Millisecond, nil); err != nil {
		t.Fatalf("RecordCacheOperation failed: %v", err)
	}
	if err := multi.IncrementCounter("c", nil); err != nil {
		t.Fatalf("IncrementCounter failed: %v", err)
	}
	if err := multi.RecordHistogram("h", 1.5, nil); err != nil {
		t.Fatalf("RecordHistogram failed: %v", err)
	}
	if err := multi.SetGauge("g", 2.5, nil); err != nil {
		t.Fatalf("SetGauge failed: %v", err)
	}
	if err := multi.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for i, e := range []*recordingExporter{a, b} {
		if e.exports != 1 || e.operations != 1 || e.counters != 1 || e.histograms != 1 || e.gauges != 1 || e.closes != 1 {
			t.Fatalf("exporter %d not fully exercised: %+v", i, e)
		}
	}
}

func TestMultiExporterPropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	failing := &recordingExporter{err: wantErr}
	healthy := &recordingExporter{}
	multi := NewMultiExporter(failing, healthy)

	if err := multi.ExportStats(&fakeStats{}, nil); !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	if healthy.exports != 0 {
		t.Fatal("expected export to stop at the failing backend")
	}
}

func TestNoOpExporter(t *testing.T) {
	exporter := NewNoOpExporter()

	if err := exporter.ExportStats(&fakeStats{}, nil); err != nil {
		t.Fatalf("ExportStats failed: %v", err)
	}
	if err := exporter.RecordCacheOperation(OperationCompute, time.Second, nil); err != nil {
		t.Fatalf("RecordCacheOperation failed: %v", err)
	}
	if err := exporter.IncrementCounter("c", nil); err != nil {
		t.Fatalf("IncrementCounter failed: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
