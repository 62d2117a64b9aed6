// Package ttlcache provides a small expiring key/value map with a fixed
// capacity. Expired entries are reclaimed lazily on read; once the map grows
// past its capacity the oldest-inserted live entry is dropped. Values are
// replaced wholesale, never partially updated.
package ttlcache

import (
	"sync"
	"time"
)

// DefaultCapacity bounds each cache map unless overridden.
const DefaultCapacity = 500

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Map is a concurrency-safe TTL map.
type Map[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]entry[V]
	order    []K
	capacity int

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// New creates a TTL map with the given capacity. A capacity of zero or less
// falls back to DefaultCapacity.
func New[K comparable, V any](capacity int) *Map[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Map[K, V]{
		entries:  make(map[K]entry[V]),
		capacity: capacity,
		nowFunc:  time.Now,
	}
}

// Get returns the live value for key. An expired entry is deleted on access
// and reported as a miss.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if m.nowFunc().After(e.expiresAt) {
		delete(m.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with an absolute expiry of now+ttl. When the
// map exceeds its capacity, the oldest-inserted live entry is evicted.
func (m *Map[K, V]) Set(key K, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = entry[V]{value: value, expiresAt: m.nowFunc().Add(ttl)}

	for len(m.entries) > m.capacity && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		// Keys already reclaimed by lazy expiry may linger in the order
		// slice; skip them until a live entry is dropped.
		if _, ok := m.entries[oldest]; ok {
			delete(m.entries, oldest)
			break
		}
	}
}

// Delete removes key if present.
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Cleanup removes every expired entry and reports how many were dropped.
func (m *Map[K, V]) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	expired := 0
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			expired++
		}
	}
	return expired
}

// Len reports the number of stored entries, including not-yet-reclaimed
// expired ones.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
