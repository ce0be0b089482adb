package cache

import (
	"sync"
	"time"

	"github.com/evyataryagoni/whereami/internal/models"
)

// entry is a stored result plus its optional expiry time
type entry struct {
	result    *models.GeoResult
	expiresAt time.Time // zero value = never expires
}

// MemoryCache implements Cache with a process-wide map.
// By default it is unbounded and entries never expire - the cache lives for
// the process lifetime. MaxEntries and TTL opt into bounds for deployments
// that need them.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int           // 0 = unbounded
	ttl        time.Duration // 0 = no expiry
}

// NewMemoryCache creates an in-memory cache.
//
// Parameters:
//   - maxEntries: maximum number of entries, 0 for unbounded
//   - ttl: time-to-live for entries, 0 for no expiry
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get returns the cached result for an IP, treating expired entries as misses
func (c *MemoryCache) Get(ip string) (*models.GeoResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[ip]
	if !ok {
		return nil, false
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		// Expired entry. Leave removal to the next Set, a read lock is held.
		return nil, false
	}

	return e.result, true
}

// Set stores a result under the given IP.
// When a capacity bound is configured and reached, an arbitrary entry is
// dropped to make room; with the default unbounded configuration nothing is
// ever removed.
func (c *MemoryCache) Set(ip string, result *models.GeoResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[ip]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOne()
	}

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.entries[ip] = entry{result: result, expiresAt: expiresAt}
}

// evictOne removes a single entry, preferring one that has already expired.
// Must be called with the write lock held.
func (c *MemoryCache) evictOne() {
	now := time.Now()
	var fallback string

	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, key)
			return
		}
		fallback = key
	}

	if fallback != "" {
		delete(c.entries, fallback)
	}
}

// Size returns the current number of entries
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close satisfies the Cache interface; the memory cache holds no resources
func (c *MemoryCache) Close() error {
	return nil
}
