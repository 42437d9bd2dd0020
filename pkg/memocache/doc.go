// Package memocache provides a capacity-bounded, concurrency-safe
// memoizing cache for an arbitrary pure function V f(K), with
// least-recently-used replacement and per-key evaluation coordination.
//
// # Overview
//
// A Cache wraps a bounded LRU store with a per-key coordination layer
// so that many goroutines can read and evaluate different keys in
// parallel while a given key's expensive computation runs at most once
// per concurrent wave of requests. Reads of already-cached keys never
// block on computation of other keys; callers contending on the same
// uncached key serialize only against each other.
//
// # Basic Usage
//
// Construct a cache from the function to memoize and a capacity:
//
//	cache, err := memocache.NewSimple(func(n int) (uint64, error) {
//	    return expensiveComputation(n), nil
//	}, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := cache.Get(42) // runs the function
//	v, err = cache.Get(42)  // cached
//
//	hr := cache.HitRate()
//	fmt.Printf("calls=%d hits=%d late=%d\n", hr.Calls, hr.Hits, hr.LateHits)
//
// Or keep the function's original shape:
//
//	memoized, cache, err := memocache.Memoize(fetchUser, 1000)
//	user, err := memoized(userID)
//
// # Locking Discipline
//
// Three kinds of locks are involved, never held together except as
// stated: a store lock held only for bounded bookkeeping, a registry
// lock held only to create/look up/remove in-flight records, and one
// lazily created mutex per contended key, the only lock ever held
// across an evaluation. A slow evaluation for key A therefore delays
// callers of A, and nobody else.
//
// # Error Handling
//
// An evaluator error propagates synchronously to the caller that ran
// the evaluator; nothing is cached and the cache is not poisoned. A
// subsequent Get for the same key retries from scratch. Reentrant
// evaluation (the evaluator calling back into Get for the key being
// evaluated) is a contract violation and panics rather than
// deadlocking silently.
//
// # Observability
//
// The cache tracks calls, fast-path hits, late hits (values that
// appeared while a caller waited on the key lock), evictions and
// invalidations. Statistics can be pushed to Prometheus or
// OpenTelemetry via pkg/metrics exporters, surfaced over HTTP with
// DebugHandler, or logged through CreateLoggingHooks.
package memocache
