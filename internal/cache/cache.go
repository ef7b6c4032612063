package cache

import (
	"sync"
	"time"
)

// Default TTLs for directory search results. Map cluster data goes stale
// faster than catalog data, so it gets a shorter window.
const (
	DefaultTTL = 15 * time.Minute
	MapDataTTL = 5 * time.Minute
)

// Cache a minimal TTL key-value store. An entry is never returned past its
// TTL: expired entries are evicted lazily on read, plus whenever a caller
// triggers Cleanup.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Cleanup()
}

type entry struct {
	data     interface{}
	storedAt time.Time
	ttl      time.Duration
}

// MemoryCache a process-local, mutex-guarded cache. Each deployed instance
// has its own copy; short TTLs make the resulting staleness acceptable for
// directory listings.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

// NewMemoryCacheWithClock allows tests to substitute a deterministic clock.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the cached value, or a miss if the key is absent or expired.
// An expired entry is deleted on the spot.
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		data:     value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Cleanup sweeps all expired entries. Callers trigger this probabilistically
// rather than on a timer; entries are small and TTLs short, so loose memory
// bounds are acceptable.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= e.ttl {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of entries currently held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
