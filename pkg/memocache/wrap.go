package memocache

// Memoize builds a cache of the given capacity over fn and returns the
// memoized function together with the cache, so callers can inspect
// hit rates or evict keys while using fn's original shape.
func Memoize[K comparable, V any](fn Func[K, V], capacity int) (func(K) (V, error), *Cache[K, V], error) {
	cache, err := NewSimple(fn, capacity)
	if err != nil {
		return nil, nil, err
	}
	return cache.Get, cache, nil
}

// Wrap returns the cache's Get as a plain function, for call sites
// that expect the evaluator's shape rather than a cache handle.
func Wrap[K comparable, V any](cache *Cache[K, V]) func(K) (V, error) {
	return cache.Get
}
