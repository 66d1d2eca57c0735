// Package cache provides the tiered balance cache: an in-process TTL
// memory tier and an optional remote tier behind the Remote interface.
package cache

import (
	"sync"
	"time"
)

// Entry is one cached value with its creation time and TTL. An entry is
// expired iff now - CreatedAt > TTL. Expiry is lazy: expired entries are
// only dropped on read or by an explicit CleanupExpired call.
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry's TTL has elapsed.
func (e Entry[T]) Expired() bool {
	return time.Since(e.CreatedAt) > e.TTL
}

// Stats describes the state of a memory tier: total entries, entries
// still within their TTL, and entries expired but not yet swept.
type Stats struct {
	Total   int
	Active  int
	Expired int
}

// Memory is a goroutine-safe in-process TTL cache.
type Memory[T any] struct {
	mu         sync.RWMutex
	items      map[string]Entry[T]
	defaultTTL time.Duration
}

// NewMemory creates a Memory cache with the given default TTL.
func NewMemory[T any](defaultTTL time.Duration) *Memory[T] {
	return &Memory[T]{
		items:      make(map[string]Entry[T]),
		defaultTTL: defaultTTL,
	}
}

// Get returns the value for key. It reports false on absence or when
// the entry's TTL has elapsed.
func (m *Memory[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T

	item, ok := m.items[key]
	if !ok || item.Expired() {
		return zero, false
	}

	return item.Value, true
}

// Set stores value under key with the default TTL, overwriting any
// existing entry.
func (m *Memory[T]) Set(key string, value T) {
	m.SetWithTTL(key, value, m.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (m *Memory[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = Entry[T]{
		Value:     value,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
}

// Remove deletes key and returns the removed value, if any.
func (m *Memory[T]) Remove(key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T

	item, ok := m.items[key]
	if !ok {
		return zero, false
	}

	delete(m.items, key)

	return item.Value, true
}

// CleanupExpired sweeps expired entries and returns how many were removed.
func (m *Memory[T]) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, item := range m.items {
		if item.Expired() {
			delete(m.items, key)
			removed++
		}
	}

	return removed
}

// Clear removes all entries.
func (m *Memory[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]Entry[T])
}

// Stats counts total, active and expired-but-unswept entries.
func (m *Memory[T]) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expired := 0
	for _, item := range m.items {
		if item.Expired() {
			expired++
		}
	}

	total := len(m.items)

	return Stats{
		Total:   total,
		Active:  total - expired,
		Expired: expired,
	}
}
