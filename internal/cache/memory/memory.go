package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
	"go-content-cache/internal/periodictask"
)

// Ensure Cache implements interfaces.Cache
var _ interfaces.Cache = (*Cache)(nil)

// Cache is the process-wide in-memory content store with a single TTL
type Cache struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
	ttl     time.Duration
	clock   clock.Clock
	logger  *zap.Logger

	purgeMu   sync.Mutex
	purgeTask *periodictask.PeriodicTask
}

// NewCache creates a memory cache using the wall clock
func NewCache(ttl time.Duration, logger *zap.Logger) *Cache {
	return NewCacheWithClock(ttl, clock.New(), logger)
}

// NewCacheWithClock creates a memory cache reading time from clk
func NewCacheWithClock(ttl time.Duration, clk clock.Clock, logger *zap.Logger) *Cache {
	return &Cache{
		entries: make(map[string]models.CacheEntry),
		ttl:     ttl,
		clock:   clk,
		logger:  logger,
	}
}

// Get returns the entry for key if it is still within the TTL.
// Expired entries are left in place; Get never mutates the store.
func (c *Cache) Get(key string) (*models.CacheEntry, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !entry.IsValid(c.clock.Now(), c.ttl) {
		return nil, false
	}
	return &entry, true
}

// Set stores val stamped with the current time, replacing any previous entry
func (c *Cache) Set(key string, val []byte) {
	if c.ttl <= 0 {
		return
	}

	entry := models.CacheEntry{Data: val, Timestamp: c.clock.Now()}

	c.mu.Lock()
	c.entries[key] = entry
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateCacheKeys("memory", int64(size))
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	removed := len(c.entries)
	c.entries = make(map[string]models.CacheEntry)
	c.mu.Unlock()

	metrics.UpdateCacheKeys("memory", 0)
	c.logger.Debug("Memory cache cleared", zap.Int("removed", removed))
}

// Invalidate removes every entry whose key contains pattern.
// An empty pattern clears the whole cache.
func (c *Cache) Invalidate(pattern string) {
	if pattern == "" {
		c.Clear()
		return
	}

	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateCacheKeys("memory", int64(size))
	c.logger.Debug("Memory cache invalidated",
		zap.String("pattern", pattern),
		zap.Int("removed", removed))
}

// StartPurge removes expired entries every interval until Close.
// Calling it again while purging is a no-op.
func (c *Cache) StartPurge(interval time.Duration) {
	if interval <= 0 || c.ttl <= 0 {
		return
	}

	c.purgeMu.Lock()
	defer c.purgeMu.Unlock()

	if c.purgeTask != nil {
		return
	}
	c.purgeTask = periodictask.NewWithClock(interval, func() { c.Purge() }, c.clock)
	c.purgeTask.Start()

	c.logger.Debug("Memory cache purge started", zap.Duration("interval", interval))
}

// Purge drops every entry that is no longer valid and returns how many were removed
func (c *Cache) Purge() int {
	now := c.clock.Now()

	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if !entry.IsValid(now, c.ttl) {
			delete(c.entries, key)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateCacheKeys("memory", int64(size))
	if removed > 0 {
		c.logger.Debug("Memory cache purged expired entries", zap.Int("removed", removed))
	}
	return removed
}

// Close stops the purge task. Repeated calls are no-ops.
func (c *Cache) Close() error {
	c.purgeMu.Lock()
	defer c.purgeMu.Unlock()

	if c.purgeTask != nil {
		c.purgeTask.Stop()
		c.purgeTask = nil
	}
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
