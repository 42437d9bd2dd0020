package memocache

// Hooks defines event callbacks for cache operations. Hooks are
// invoked synchronously on the calling goroutine; keep them cheap or
// hand off to a channel. OnEvict fires while the store lock is held
// and must not call back into the cache.
type Hooks[K comparable, V any] struct {
	// OnHit is called on a fast-path hit.
	OnHit []OnHitHook[K, V]

	// OnMiss is called when the fast path does not find the key.
	OnMiss []OnMissHook[K]

	// OnLateHit is called when a miss resolves to a value another
	// caller computed while this one waited on the key lock.
	OnLateHit []OnLateHitHook[K, V]

	// OnEvict is called when an entry is displaced by a capacity
	// eviction.
	OnEvict []OnEvictHook[K, V]

	// OnInvalidate is called when an entry is explicitly evicted.
	OnInvalidate []OnInvalidateHook[K]
}

// Hook function type definitions
type (
	// OnHitHook is called when a fast-path hit occurs.
	OnHitHook[K comparable, V any] func(key K, value V)

	// OnMissHook is called when a fast-path miss occurs.
	OnMissHook[K comparable] func(key K)

	// OnLateHitHook is called when a late hit occurs.
	OnLateHitHook[K comparable, V any] func(key K, value V)

	// OnEvictHook is called when an entry is capacity-evicted.
	OnEvictHook[K comparable, V any] func(key K, value V)

	// OnInvalidateHook is called when an entry is explicitly evicted.
	OnInvalidateHook[K comparable] func(key K)
)

// AddOnHit adds an OnHit hook.
func (h *Hooks[K, V]) AddOnHit(hook OnHitHook[K, V]) {
	h.OnHit = append(h.OnHit, hook)
}

// AddOnMiss adds an OnMiss hook.
func (h *Hooks[K, V]) AddOnMiss(hook OnMissHook[K]) {
	h.OnMiss = append(h.OnMiss, hook)
}

// AddOnLateHit adds an OnLateHit hook.
func (h *Hooks[K, V]) AddOnLateHit(hook OnLateHitHook[K, V]) {
	h.OnLateHit = append(h.OnLateHit, hook)
}

// AddOnEvict adds an OnEvict hook.
func (h *Hooks[K, V]) AddOnEvict(hook OnEvictHook[K, V]) {
	h.OnEvict = append(h.OnEvict, hook)
}

// AddOnInvalidate adds an OnInvalidate hook.
func (h *Hooks[K, V]) AddOnInvalidate(hook OnInvalidateHook[K]) {
	h.OnInvalidate = append(h.OnInvalidate, hook)
}

// Merge appends all hooks from other.
func (h *Hooks[K, V]) Merge(other *Hooks[K, V]) {
	if other == nil {
		return
	}
	h.OnHit = append(h.OnHit, other.OnHit...)
	h.OnMiss = append(h.OnMiss, other.OnMiss...)
	h.OnLateHit = append(h.OnLateHit, other.OnLateHit...)
	h.OnEvict = append(h.OnEvict, other.OnEvict...)
	h.OnInvalidate = append(h.OnInvalidate, other.OnInvalidate...)
}

func (h *Hooks[K, V]) invokeOnHit(key K, value V) {
	for _, hook := range h.OnHit {
		if hook != nil {
			hook(key, value)
		}
	}
}

func (h *Hooks[K, V]) invokeOnMiss(key K) {
	for _, hook := range h.OnMiss {
		if hook != nil {
			hook(key)
		}
	}
}

func (h *Hooks[K, V]) invokeOnLateHit(key K, value V) {
	for _, hook := range h.OnLateHit {
		if hook != nil {
			hook(key, value)
		}
	}
}

func (h *Hooks[K, V]) invokeOnEvict(key K, value V) {
	for _, hook := range h.OnEvict {
		if hook != nil {
			hook(key, value)
		}
	}
}

func (h *Hooks[K, V]) invokeOnInvalidate(key K) {
	for _, hook := range h.OnInvalidate {
		if hook != nil {
			hook(key)
		}
	}
}
