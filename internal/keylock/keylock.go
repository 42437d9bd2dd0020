// Package keylock provides per-key mutual exclusion with explicit
// caller registration, so that callers contending on the same key
// serialize against each other while unrelated keys proceed freely.
//
// Unlike a singleflight group, the key mutex does not share a computed
// result: a caller that wins the mutex after another finished is
// expected to re-check its own cache and may itself become the next
// evaluator. That keeps failure handling local to one caller.
package keylock

import "sync"

// flight is the in-flight-evaluation record for one key: the
// key-specific mutex plus the identities of goroutines currently
// between Register and Deregister for that key.
type flight struct {
	mu     sync.Mutex
	active map[uint64]struct{}
}

// Group tracks in-flight evaluation records by key. The zero value is
// ready to use. Records are created lazily on first registration and
// removed once their active set empties, so steady-state memory is
// bounded by the number of currently contended keys.
type Group[K comparable] struct {
	mu sync.Mutex
	m  map[K]*flight
}

// Register adds the calling goroutine to the active set for key,
// creating the record if needed, and returns the key-specific mutex.
// The mutex is returned unlocked; the caller locks it to enter the
// evaluation critical section and must eventually call Deregister from
// the same goroutine.
//
// Registering a key the calling goroutine is already registered for
// panics: it indicates reentrant recursion through the evaluator,
// which would self-deadlock on the key mutex and is a contract
// violation rather than a supported pattern.
func (g *Group[K]) Register(key K) *sync.Mutex {
	id := goroutineID()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.m == nil {
		g.m = make(map[K]*flight)
	}

	f, ok := g.m[key]
	if !ok {
		f = &flight{active: make(map[uint64]struct{})}
		g.m[key] = f
	}

	if _, dup := f.active[id]; dup {
		panic("keylock: goroutine already registered for key (reentrant evaluation)")
	}
	f.active[id] = struct{}{}

	return &f.mu
}

// Deregister removes the calling goroutine from the active set for
// key, deleting the record entirely once no goroutine remains. It must
// be called exactly once per Register, on the registering goroutine.
func (g *Group[K]) Deregister(key K) {
	id := goroutineID()

	g.mu.Lock()
	defer g.mu.Unlock()

	f, ok := g.m[key]
	if !ok {
		panic("keylock: deregister of unregistered key")
	}
	if _, registered := f.active[id]; !registered {
		panic("keylock: deregister by goroutine that never registered")
	}

	delete(f.active, id)
	if len(f.active) == 0 {
		delete(g.m, key)
	}
}

// InFlight returns the number of keys that currently have a live
// evaluation record.
func (g *Group[K]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.m)
}
