// Package lru implements a capacity-bounded memoizing store for a pure
// function V f(K), with least-recently-used replacement.
//
// The store is deliberately not safe for concurrent use. It exposes the
// primitives (Contains, SetIfAbsent) a higher layer needs to build
// concurrency safety without re-locking the store's internals; see
// pkg/memocache for that layer.
package lru

import (
	"errors"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// ErrInvalidCapacity is returned when a store is constructed with a
// non-positive capacity.
var ErrInvalidCapacity = errors.New("lru: capacity must be positive")

// Func computes the value for a key. It is supplied once at
// construction and invoked on lookup misses.
type Func[K comparable, V any] func(K) (V, error)

// EvictCallback is invoked when an entry is displaced by a
// capacity-triggered eviction. It is not invoked for explicit Evict
// calls, which are invalidations rather than evictions.
type EvictCallback[K comparable, V any] func(key K, value V)

// Store holds at most capacity key/value pairs, tracking recency of
// access and evicting the least-recently-used entry on overflow.
type Store[K comparable, V any] struct {
	fn       Func[K, V]
	cache    *simplelru.LRU[K, V]
	capacity int

	onEvict       EvictCallback[K, V]
	suppressEvict bool

	// Evaluation counters, allocated only when tracking is enabled.
	evalCounts map[K]uint64
}

// New creates a store over the given function with the given capacity.
func New[K comparable, V any](fn Func[K, V], capacity int, onEvict EvictCallback[K, V]) (*Store[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	s := &Store[K, V]{
		fn:       fn,
		capacity: capacity,
		onEvict:  onEvict,
	}

	cache, err := simplelru.NewLRU[K, V](capacity, func(key K, value V) {
		if s.suppressEvict || s.onEvict == nil {
			return
		}
		s.onEvict(key, value)
	})
	if err != nil {
		return nil, err
	}

	s.cache = cache
	return s, nil
}

// NewWithEvalTracking creates a store that additionally counts how many
// times the function has been evaluated per key. Intended for tests and
// debugging; a counter above 1 flags an unexpected re-evaluation.
func NewWithEvalTracking[K comparable, V any](fn Func[K, V], capacity int, onEvict EvictCallback[K, V]) (*Store[K, V], error) {
	s, err := New(fn, capacity, onEvict)
	if err != nil {
		return nil, err
	}
	s.evalCounts = make(map[K]uint64)
	return s, nil
}

// LookupOrCompute returns the value for key. On a hit the key is marked
// most-recently-used and the stored value returned without invoking the
// function. On a miss the function is invoked synchronously and its
// result inserted, evicting the least-recently-used entry first if the
// store is full. A function error propagates unchanged and nothing is
// inserted.
func (s *Store[K, V]) LookupOrCompute(key K) (V, error) {
	if value, ok := s.cache.Get(key); ok {
		return value, nil
	}

	value, err := s.fn(key)
	if err != nil {
		var zero V
		return zero, err
	}

	if s.evalCounts != nil {
		s.evalCounts[key]++
	}

	s.cache.Add(key, value)
	return value, nil
}

// Contains reports whether key is present without affecting recency
// ordering. This is a peek, not a touch.
func (s *Store[K, V]) Contains(key K) bool {
	return s.cache.Contains(key)
}

// SetIfAbsent inserts the pair only if key is not already present, and
// reports whether an insertion happened. When the key exists the call
// is a no-op: value equality is not asserted, since the value type is
// not required to be comparable. An insertion counts as an evaluation
// when tracking is enabled, since the published value was computed by
// the caller.
func (s *Store[K, V]) SetIfAbsent(key K, value V) bool {
	if s.cache.Contains(key) {
		return false
	}
	if s.evalCounts != nil {
		s.evalCounts[key]++
	}
	s.cache.Add(key, value)
	return true
}

// Evict removes key regardless of its recency position, and reports
// whether it was present. Evicting an absent key is a no-op. The
// capacity-eviction callback is not invoked.
func (s *Store[K, V]) Evict(key K) bool {
	s.suppressEvict = true
	removed := s.cache.Remove(key)
	s.suppressEvict = false
	return removed
}

// IsFull reports whether the store has reached capacity.
func (s *Store[K, V]) IsFull() bool {
	return s.cache.Len() >= s.capacity
}

// Len returns the current number of entries.
func (s *Store[K, V]) Len() int {
	return s.cache.Len()
}

// Capacity returns the maximum number of entries the store can hold.
func (s *Store[K, V]) Capacity() int {
	return s.capacity
}

// Keys returns the cached keys, most-recently-used first. Provided to
// support diagnostics and tests; does not mutate recency state.
func (s *Store[K, V]) Keys() []K {
	oldest := s.cache.Keys()
	keys := make([]K, len(oldest))
	for i, key := range oldest {
		keys[len(oldest)-1-i] = key
	}
	return keys
}

// Purge removes all entries without invoking the eviction callback.
func (s *Store[K, V]) Purge() {
	s.suppressEvict = true
	s.cache.Purge()
	s.suppressEvict = false
	if s.evalCounts != nil {
		s.evalCounts = make(map[K]uint64)
	}
}

// EvalCount returns how many times the function has been evaluated for
// key. Always zero unless the store was created with eval tracking.
func (s *Store[K, V]) EvalCount(key K) uint64 {
	return s.evalCounts[key]
}
