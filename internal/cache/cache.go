// file: internal/cache/cache.go
// version: 2.1.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a generic TTL cache safe for concurrent use. Search results are
// cached here by the HTTP layer; the search engine itself never caches.
type Cache[T any] struct {
	mu         sync.RWMutex
	items      map[string]entry[T]
	defaultTTL time.Duration
	maxEntries int
}

// New creates a cache with the given default TTL and no size bound.
func New[T any](defaultTTL time.Duration) *Cache[T] {
	return NewBounded[T](defaultTTL, 0)
}

// NewBounded creates a cache that holds at most maxEntries live entries.
// When full, expired entries are swept first and then the whole cache is
// cleared. maxEntries <= 0 means unbounded.
func NewBounded[T any](defaultTTL time.Duration, maxEntries int) *Cache[T] {
	return &Cache[T]{
		items:      make(map[string]entry[T]),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
	}
}

// Get retrieves a value if it exists and hasn't expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a specific TTL. A non-positive TTL is a no-op.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		if _, exists := c.items[key]; !exists {
			c.sweepLocked(now)
			if len(c.items) >= c.maxEntries {
				c.items = make(map[string]entry[T])
			}
		}
	}
	c.items[key] = entry[T]{value: value, expiresAt: now.Add(ttl)}
}

func (c *Cache[T]) sweepLocked(now time.Time) {
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}

// InvalidateAll removes all entries and returns how many there were.
func (c *Cache[T]) InvalidateAll() int {
	c.mu.Lock()
	n := len(c.items)
	c.items = make(map[string]entry[T])
	c.mu.Unlock()
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
