package manager

import (
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Factory constructs the manager for key.
type Factory[K comparable, T any] func(key K) *Manager[T]

// Registry maps keys to managers, at most one manager per key.
//
// Get constructs managers on first use. Beyond capacity the least recently
// used manager is evicted and closed, cancelling its in-flight refresh; a
// later Get for that key constructs a fresh manager.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry[K comparable, T any] struct {
	mu      sync.Mutex
	factory Factory[K, T]
	entries *lru.Cache[K, *Manager[T]]
}

// NewRegistry creates a Registry holding up to capacity managers.
// A capacity of zero or less means unbounded.
func NewRegistry[K comparable, T any](capacity int, factory Factory[K, T]) *Registry[K, T] {
	if capacity <= 0 {
		capacity = math.MaxInt32
	}
	entries, err := lru.NewWithEvict(capacity, func(_ K, m *Manager[T]) {
		m.Close()
	})
	if err != nil {
		// Only returned for a non-positive size, excluded above.
		panic(err)
	}
	return &Registry[K, T]{factory: factory, entries: entries}
}

// Get returns the manager for key, constructing and registering it if
// needed.
func (r *Registry[K, T]) Get(key K) *Manager[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.entries.Get(key); ok {
		return m
	}
	m := r.factory(key)
	r.entries.Add(key, m)
	return m
}

// Lookup returns the manager for key without constructing one or touching
// its recency.
func (r *Registry[K, T]) Lookup(key K) (*Manager[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Peek(key)
}

// Remove closes and forgets the manager for key. Reports whether one was
// registered.
func (r *Registry[K, T]) Remove(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Remove(key)
}

// Len returns the number of registered managers.
func (r *Registry[K, T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Len()
}

// Keys returns the registered keys from least to most recently used.
func (r *Registry[K, T]) Keys() []K {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Keys()
}

// Close closes and forgets every manager.
func (r *Registry[K, T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries.Purge()
}
