package multi

import (
	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// Ensure MultiCache implements interfaces.Cache
var _ interfaces.Cache = (*MultiCache)(nil)

// MultiCache implements a composite cache over an ordered list of tiers.
// Reads stop at the first tier holding a valid entry; writes and invalidations
// fan out to every tier.
type MultiCache struct {
	caches []interfaces.Cache
	logger *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache implementations
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		caches: caches,
		logger: logger,
	}
}

// Get retrieves the entry from the first tier that holds a valid one.
// Lower-tier hits are not copied upward: Set restamps entries.
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return nil, false
	}

	for i, cache := range mc.caches {
		if entry, found := cache.Get(key); found {
			mc.logger.Debug("Multi cache hit", zap.String("key", key), zap.Int("tier", i))
			return entry, true
		}
	}
	return nil, false
}

// Set stores value in all available caches
func (mc *MultiCache) Set(key string, val []byte) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(key, val)
	}
}

// Clear empties every tier
func (mc *MultiCache) Clear() {
	for _, cache := range mc.caches {
		cache.Clear()
	}
}

// Invalidate removes matching keys from every tier
func (mc *MultiCache) Invalidate(pattern string) {
	for _, cache := range mc.caches {
		cache.Invalidate(pattern)
	}
}

// GetCacheCount returns the number of caches in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}
