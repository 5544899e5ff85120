package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a TTL-keyed in-memory store, safe for concurrent use.
// Entries expire lazily on read; a hit does not refresh the TTL.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	now     func() time.Time
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// NewWithClock is like New but with an injectable clock for tests.
func NewWithClock[T any](now func() time.Time) *Cache[T] {
	c := New[T]()
	c.now = now
	return c
}

// NormalizeKey folds a free-text query into a cache key.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the value stored under key, if present and not expired.
// Expired entries are removed on access.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}

	if c.now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores value under key for ttl, replacing any existing entry.
// Last write wins.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{value: value, storedAt: c.now(), ttl: ttl}
}

// Len returns the number of entries, including any not yet lazily expired.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
