package memocache

import (
	"sync/atomic"
)

// HitRate is an immutable snapshot of the hit-rate counters.
// Calls - Hits - LateHits is the number of callers that actually ran
// the evaluator.
type HitRate struct {
	// Calls is the total number of Get invocations.
	Calls int64

	// Hits is the number of fast-path hits.
	Hits int64

	// LateHits is the number of misses that resolved without the
	// caller computing the value itself, because the value appeared in
	// the store while the caller waited on the key lock.
	LateHits int64
}

// Evaluations returns the number of calls that ran the evaluator.
func (h HitRate) Evaluations() int64 {
	return h.Calls - h.Hits - h.LateHits
}

// Stats holds cache performance statistics.
type Stats struct {
	// calls is the total number of Get invocations
	calls int64

	// hits is the number of fast-path cache hits
	hits int64

	// lateHits is the number of hits discovered only after losing an
	// evaluation race
	lateHits int64

	// evictions is the number of capacity-evicted entries
	evictions int64

	// invalidations is the number of explicitly evicted entries
	invalidations int64

	// keyCount is the current number of keys in the cache
	keyCount int64

	// inFlight is the number of callers currently past the fast path
	inFlight int64
}

// Calls returns the total number of Get invocations.
func (s *Stats) Calls() int64 {
	return atomic.LoadInt64(&s.calls)
}

// Hits returns the number of fast-path cache hits.
func (s *Stats) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

// LateHits returns the number of late hits.
func (s *Stats) LateHits() int64 {
	return atomic.LoadInt64(&s.lateHits)
}

// Evictions returns the number of capacity-evicted entries.
func (s *Stats) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// Invalidations returns the number of explicitly evicted entries.
func (s *Stats) Invalidations() int64 {
	return atomic.LoadInt64(&s.invalidations)
}

// KeyCount returns the current number of keys in the cache.
func (s *Stats) KeyCount() int64 {
	return atomic.LoadInt64(&s.keyCount)
}

// InFlight returns the number of callers currently coordinating or
// running an evaluation.
func (s *Stats) InFlight() int64 {
	return atomic.LoadInt64(&s.inFlight)
}

// Evaluations returns the number of calls that ran the evaluator.
func (s *Stats) Evaluations() int64 {
	return s.Calls() - s.Hits() - s.LateHits()
}

// HitRate returns the combined hit rate (fast-path and late hits) as a
// percentage of all calls, 0-100.
func (s *Stats) HitRate() float64 {
	calls := s.Calls()
	if calls == 0 {
		return 0
	}

	return float64(s.Hits()+s.LateHits()) / float64(calls) * 100
}

// Snapshot returns an immutable copy of the hit-rate counters.
func (s *Stats) Snapshot() HitRate {
	return HitRate{
		Calls:    s.Calls(),
		Hits:     s.Hits(),
		LateHits: s.LateHits(),
	}
}

// Reset resets all statistics to zero.
func (s *Stats) Reset() {
	atomic.StoreInt64(&s.calls, 0)
	atomic.StoreInt64(&s.hits, 0)
	atomic.StoreInt64(&s.lateHits, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.invalidations, 0)
	atomic.StoreInt64(&s.keyCount, 0)
	atomic.StoreInt64(&s.inFlight, 0)
}

// Internal methods for updating stats (not exported)

func (s *Stats) incCalls() {
	atomic.AddInt64(&s.calls, 1)
}

func (s *Stats) incHits() {
	atomic.AddInt64(&s.hits, 1)
}

func (s *Stats) incLateHits() {
	atomic.AddInt64(&s.lateHits, 1)
}

func (s *Stats) incEvictions() {
	atomic.AddInt64(&s.evictions, 1)
}

func (s *Stats) incInvalidations() {
	atomic.AddInt64(&s.invalidations, 1)
}

func (s *Stats) setKeyCount(count int64) {
	atomic.StoreInt64(&s.keyCount, count)
}

func (s *Stats) incInFlight() {
	atomic.AddInt64(&s.inFlight, 1)
}

func (s *Stats) decInFlight() {
	atomic.AddInt64(&s.inFlight, -1)
}
