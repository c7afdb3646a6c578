package tourguide

import "sync"

// Guarded holds a value that many exchanges share. Every access goes
// through a callback that runs with the lock held; the lock is released when
// the callback returns or panics.
//
// Callbacks must not block on I/O.
type Guarded[T any] struct {
	mu    sync.Mutex
	value T
}

// NewGuarded returns a Guarded holding v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{value: v}
}

// Do runs fn with exclusive access to the value.
func (g *Guarded[T]) Do(fn func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.value)
}

// View runs fn with a shallow copy of the value, under the lock.
func (g *Guarded[T]) View(fn func(T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.value)
}

// Apply runs fn with exclusive access to the value of g and returns its result.
func Apply[T, R any](g *Guarded[T], fn func(*T) R) R {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&g.value)
}
