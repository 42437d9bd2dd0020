package memocache

import (
	"errors"
	"sync"
	"time"

	"github.com/reunanen/lru-timday/internal/keylock"
	"github.com/reunanen/lru-timday/internal/lru"
	"github.com/reunanen/lru-timday/pkg/metrics"
)

// Construction errors.
var (
	ErrNilFunc         = errors.New("memocache: evaluator function must not be nil")
	ErrInvalidCapacity = errors.New("memocache: capacity must be positive")
)

// Func computes the value for a key. It is supplied once at
// construction. The cache may invoke it concurrently for distinct
// keys, so it must be stateless or safe for concurrent use.
type Func[K comparable, V any] func(K) (V, error)

// Cache memoizes a function V f(K) behind a capacity-bounded LRU
// store, safely usable by many concurrent callers. Reads of cached
// keys never block on computation of other keys, and a key under
// computation is evaluated by exactly one caller per concurrent wave
// of requests.
type Cache[K comparable, V any] struct {
	config  *Config[K, V]
	fn      Func[K, V]
	store   *lru.Store[K, V]
	flights *keylock.Group[K]
	stats   *Stats
	hooks   *Hooks[K, V]

	// mu guards the store. It is held only for bounded bookkeeping,
	// never across an evaluation.
	mu sync.Mutex

	// Metrics
	metricsExporter metrics.Exporter
	metricsLabels   metrics.Labels
	metricsStop     chan struct{}
	metricsWg       sync.WaitGroup
}

// New creates a cache over the given function with the given
// configuration. The evaluator must be non-nil and the capacity
// positive.
func New[K comparable, V any](fn Func[K, V], config *Config[K, V]) (*Cache[K, V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if config == nil {
		config = NewDefaultConfig[K, V]()
	}
	if config.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	cache := &Cache[K, V]{
		config:  config,
		fn:      fn,
		flights: &keylock.Group[K]{},
		stats:   &Stats{},
		hooks:   config.Hooks,
	}
	if cache.hooks == nil {
		cache.hooks = &Hooks[K, V]{}
	}

	onEvict := func(key K, value V) {
		cache.stats.incEvictions()
		cache.hooks.invokeOnEvict(key, value)
	}

	var (
		store *lru.Store[K, V]
		err   error
	)
	if config.TrackEvaluations {
		store, err = lru.NewWithEvalTracking(lru.Func[K, V](fn), config.Capacity, onEvict)
	} else {
		store, err = lru.New(lru.Func[K, V](fn), config.Capacity, onEvict)
	}
	if err != nil {
		return nil, err
	}
	cache.store = store

	cache.initializeMetrics()

	return cache, nil
}

// NewSimple creates a cache with just a capacity and default
// configuration otherwise.
func NewSimple[K comparable, V any](fn Func[K, V], capacity int) (*Cache[K, V], error) {
	return New(fn, NewDefaultConfig[K, V]().WithCapacity(capacity))
}

func (c *Cache[K, V]) lock(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Get returns the value of the cached function for key, computing it
// at most once per concurrent wave of callers.
//
// A fast-path hit returns immediately without blocking on any
// in-flight computation. On a miss the caller serializes on a
// key-specific lock against other callers of the same key only,
// re-checks the store (another caller may have published the value in
// the meantime; that is a late hit), and otherwise runs the evaluator
// outside every lock except the key lock before publishing the result.
//
// An evaluator error propagates to this caller only and nothing is
// cached: the next caller for the key re-evaluates from scratch.
func (c *Cache[K, V]) Get(key K) (V, error) {
	start := time.Now()
	defer func() {
		c.recordCacheOperation(metrics.OperationGet, time.Since(start))
	}()

	c.stats.incCalls()

	// Fast path: the store lock is held only for the O(1) touch.
	var (
		value V
		found bool
	)
	c.lock(func() {
		if c.store.Contains(key) {
			value, _ = c.store.LookupOrCompute(key)
			found = true
		}
	})
	if found {
		c.stats.incHits()
		c.hooks.invokeOnHit(key, value)
		return value, nil
	}
	c.hooks.invokeOnMiss(key)

	c.stats.incInFlight()
	defer c.stats.decInFlight()

	// Register with the per-key registry, then serialize on the key
	// lock. The deferred calls guarantee the registry record cannot be
	// leaked, whatever the evaluator does.
	keyMu := c.flights.Register(key)
	defer c.flights.Deregister(key)

	keyMu.Lock()
	defer keyMu.Unlock()

	// Re-check under serialization: a caller that held the key lock
	// before us may already have published the value.
	c.lock(func() {
		if c.store.Contains(key) {
			value, _ = c.store.LookupOrCompute(key)
			found = true
		}
	})
	if found {
		c.stats.incLateHits()
		c.hooks.invokeOnLateHit(key, value)
		return value, nil
	}

	// Compute outside the store lock so unrelated keys stay readable
	// for the full duration of the evaluation.
	computeStart := time.Now()
	computed, err := c.fn(key)
	c.recordCacheOperation(metrics.OperationCompute, time.Since(computeStart))
	if err != nil {
		var zero V
		return zero, err
	}

	c.lock(func() {
		c.store.SetIfAbsent(key, computed)
		c.updateKeyCount()
	})

	return computed, nil
}

// Contains reports whether key is currently cached, without affecting
// recency ordering. The result is a best-effort diagnostic: it may be
// stale by the time it is returned and must not be treated as
// transactionally consistent with a subsequent Get.
func (c *Cache[K, V]) Contains(key K) bool {
	var ok bool
	c.lock(func() {
		ok = c.store.Contains(key)
	})
	return ok
}

// Evict removes key from the cache regardless of its recency position,
// and reports whether it was present. Evicting an absent key is a
// no-op. Intended for callers that know a key is no longer needed and
// want to free its slot early.
func (c *Cache[K, V]) Evict(key K) bool {
	start := time.Now()
	defer func() {
		c.recordCacheOperation(metrics.OperationEvict, time.Since(start))
	}()

	var removed bool
	c.lock(func() {
		removed = c.store.Evict(key)
		c.updateKeyCount()
	})
	if removed {
		c.stats.incInvalidations()
		c.hooks.invokeOnInvalidate(key)
	}
	return removed
}

// Keys returns the cached keys, most-recently-used first. Diagnostic
// surface; does not mutate recency state.
func (c *Cache[K, V]) Keys() []K {
	var keys []K
	c.lock(func() {
		keys = c.store.Keys()
	})
	return keys
}

// Len returns the current number of cached entries.
func (c *Cache[K, V]) Len() int {
	var length int
	c.lock(func() {
		length = c.store.Len()
	})
	return length
}

// Capacity returns the fixed maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.store.Capacity()
}

// IsFull reports whether the cache has reached capacity.
func (c *Cache[K, V]) IsFull() bool {
	var full bool
	c.lock(func() {
		full = c.store.IsFull()
	})
	return full
}

// HitRate returns an immutable snapshot of the hit-rate counters.
func (c *Cache[K, V]) HitRate() HitRate {
	return c.stats.Snapshot()
}

// Stats returns the cache statistics.
func (c *Cache[K, V]) Stats() *Stats {
	c.lock(func() {
		c.updateKeyCount()
	})
	return c.stats
}

// EvalCount returns how many times an evaluation result for key has
// been inserted into the store. Always zero unless the cache was
// configured with evaluation tracking.
func (c *Cache[K, V]) EvalCount(key K) uint64 {
	var count uint64
	c.lock(func() {
		count = c.store.EvalCount(key)
	})
	return count
}

// Close stops the metrics reporter, closes the exporter and purges the
// store. The cache must not be used after Close.
func (c *Cache[K, V]) Close() error {
	if c.metricsStop != nil {
		close(c.metricsStop)
		c.metricsWg.Wait()
		c.metricsStop = nil
	}

	var err error
	if c.metricsExporter != nil {
		err = c.metricsExporter.Close()
	}

	c.lock(func() {
		c.store.Purge()
		c.updateKeyCount()
	})
	return err
}

// updateKeyCount refreshes the key count statistic. Caller holds the
// store lock.
func (c *Cache[K, V]) updateKeyCount() {
	c.stats.setKeyCount(int64(c.store.Len()))
}

// initializeMetrics sets up metrics collection if configured.
func (c *Cache[K, V]) initializeMetrics() {
	if c.config.Metrics == nil || !c.config.Metrics.Enabled || c.config.Metrics.Exporter == nil {
		c.metricsExporter = metrics.NewNoOpExporter()
		return
	}

	c.metricsExporter = c.config.Metrics.Exporter

	c.metricsLabels = make(metrics.Labels)
	if c.config.Metrics.CacheName != "" {
		c.metricsLabels["cache_name"] = c.config.Metrics.CacheName
	} else {
		c.metricsLabels["cache_name"] = "default"
	}
	for k, v := range c.config.Metrics.Labels {
		c.metricsLabels[k] = v
	}

	if c.config.Metrics.ReportingInterval > 0 {
		c.metricsStop = make(chan struct{})
		c.metricsWg.Add(1)
		go c.metricsReporter()
	}
}

// metricsReporter periodically exports cache statistics.
func (c *Cache[K, V]) metricsReporter() {
	defer c.metricsWg.Done()

	ticker := time.NewTicker(c.config.Metrics.ReportingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.exportCurrentStats()
		case <-c.metricsStop:
			// Final stats export before shutting down
			c.exportCurrentStats()
			return
		}
	}
}

// exportCurrentStats exports the current statistics to metrics.
func (c *Cache[K, V]) exportCurrentStats() {
	c.lock(func() {
		c.updateKeyCount()
	})
	_ = c.metricsExporter.ExportStats(c.stats, c.metricsLabels) //nolint:errcheck // reporter is fire-and-forget
}

// recordCacheOperation records a cache operation with timing for metrics.
func (c *Cache[K, V]) recordCacheOperation(operation metrics.Operation, duration time.Duration) {
	if c.metricsExporter != nil {
		_ = c.metricsExporter.RecordCacheOperation(operation, duration, c.metricsLabels) //nolint:errcheck // reporter is fire-and-forget
	}
}
