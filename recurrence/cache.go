package recurrence

import (
	"sync"
	"time"

	"github.com/cyp0633/librecur/datetime"
)

// cacheEntry is a cached next-occurrence result. A nil occurrence is a
// valid result: it records that the rule is exhausted past the pivot.
type cacheEntry struct {
	occurrence *datetime.Date
	expiresAt  time.Time
	accessedAt time.Time
}

// Cache memoizes next-occurrence results keyed by rule fingerprint and
// pivot. Entries expire after a TTL and the least recently accessed
// entries are evicted when the cache outgrows its limit.
type Cache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the next-occurrence cache.
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for result caching.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewCache creates a cache with the given configuration and starts its
// cleanup goroutine. Call Close to stop it.
func NewCache(config CacheConfig) *Cache {
	cache := &Cache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	if cache.ttl <= 0 {
		cache.ttl = DefaultCacheConfig.TTL
	}
	if cache.maxEntries <= 0 {
		cache.maxEntries = DefaultCacheConfig.MaxEntries
	}
	if cache.cleanupInterval <= 0 {
		cache.cleanupInterval = DefaultCacheConfig.CleanupInterval
	}
	go cache.cleanupLoop()
	return cache
}

// Get retrieves a cached result if it exists and has not expired. The
// second return value distinguishes a cached nil from a miss.
func (c *Cache) Get(key string) (*datetime.Date, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	c.mutex.Unlock()

	return entry.occurrence, true
}

// Set stores a result in the cache.
func (c *Cache) Set(key string, occurrence *datetime.Date) {
	now := time.Now()
	entry := &cacheEntry{
		occurrence: occurrence,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry
	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries, then the least recently accessed
// entries while still over the limit. Callers hold the write lock.
func (c *Cache) cleanup() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	for len(c.entries) > c.maxEntries {
		var oldestKey string
		var oldest time.Time
		for key, entry := range c.entries {
			if oldestKey == "" || entry.accessedAt.Before(oldest) {
				oldestKey = key
				oldest = entry.accessedAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache.
func (c *Cache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// Stats returns a snapshot of cache occupancy.
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	stats := CacheStats{TotalEntries: len(c.entries)}
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			stats.ExpiredEntries++
		}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries
	return stats
}

// CacheStats provides information about cache occupancy.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
