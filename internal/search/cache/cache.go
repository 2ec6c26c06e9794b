// Package cache provides the process-wide query cache shared by all search
// providers. It trades staleness of up to the TTL for API quota savings.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/internal/telemetry"
)

const (
	// DefaultTTL is how long a cached query result stays valid.
	DefaultTTL = 30 * time.Minute

	// DefaultCapacity is the hard cap on cached entries.
	DefaultCapacity = 200
)

// Clock supplies the current time. Injectable for tests.
type Clock func() time.Time

type entry struct {
	results  []search.Result
	storedAt time.Time
}

// Cache is a mutex-guarded TTL cache with insertion-order eviction. Expired
// entries are removed lazily on the read that discovers the expiry; capacity
// eviction removes the oldest-inserted entry, not the least recently used.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      Clock
	entries  map[string]entry
	order    []string
}

// New creates a cache with the given TTL and capacity. Zero values fall back
// to the defaults. A nil clock uses time.Now.
func New(ttl time.Duration, capacity int, now Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		now:      now,
		entries:  make(map[string]entry, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Key builds the deterministic cache key for a query. Page zero and page one
// are the same request and share a key.
func Key(query string, resultCount int, dateRange string, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s|%d|%s|%d", query, resultCount, dateRange, page)
}

// Get returns the cached results for key, or false when absent or expired.
func (c *Cache) Get(key string) ([]search.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		telemetry.RecordCacheMiss()
		return nil, false
	}

	if c.now().Sub(e.storedAt) > c.ttl {
		c.remove(key)
		telemetry.RecordCacheMiss()
		return nil, false
	}

	telemetry.RecordCacheHit()
	return e.results, true
}

// Put stores results under key. Updating an existing key keeps its original
// insertion position; inserting beyond capacity evicts the oldest entry.
func (c *Cache) Put(key string, results []search.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry{results: results, storedAt: c.now()}
		return
	}

	if len(c.entries) >= c.capacity {
		c.remove(c.order[0])
		telemetry.RecordCacheEviction()
	}

	c.entries[key] = entry{results: results, storedAt: c.now()}
	c.order = append(c.order, key)
}

// Len returns the number of entries currently stored, including entries
// whose expiry has not been discovered yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the entry map and the insertion order.
// Callers must hold the mutex.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
