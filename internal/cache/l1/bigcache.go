package l1

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
	"go-content-cache/internal/periodictask"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the content cache on top of BigCache
type BigCache struct {
	cache            *bigcache.BigCache
	ttl              time.Duration
	clock            clock.Clock
	logger           *zap.Logger
	metricsScheduler *periodictask.PeriodicTask
	closeOnce        sync.Once
	closeErr         error
}

// NewBigCache creates a new BigCache instance. ttl must be positive.
func NewBigCache(bigcacheCfg *config.BigCacheConfig, ttl time.Duration, clk clock.Clock, logger *zap.Logger) (*BigCache, error) {
	// Entries are validated against ttl on read; the life window only reclaims memory
	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = ttl
	cfg.HardMaxCacheSize = bigcacheCfg.Size // Size in MB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:  cache,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}

	// Start periodic metrics collection
	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a valid entry from cache
func (bc *BigCache) Get(key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		return nil, false
	}

	if !entry.IsValid(bc.clock.Now(), bc.ttl) {
		return nil, false
	}

	return &entry, true
}

// Set stores value in cache stamped with the current time
func (bc *BigCache) Set(key string, val []byte) {
	entry := models.CacheEntry{
		Data:      val,
		Timestamp: bc.clock.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// Clear removes all entries
func (bc *BigCache) Clear() {
	if err := bc.cache.Reset(); err != nil {
		bc.logger.Error("Failed to reset L1 cache", zap.Error(err))
		metrics.RecordCacheError("l1", "reset")
	}
}

// Invalidate removes every entry whose key contains pattern, or all entries for an empty pattern
func (bc *BigCache) Invalidate(pattern string) {
	if pattern == "" {
		bc.Clear()
		return
	}

	var matched []string
	it := bc.cache.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			// Entry was evicted while iterating
			continue
		}
		if strings.Contains(info.Key(), pattern) {
			matched = append(matched, info.Key())
		}
	}

	for _, key := range matched {
		bc.Delete(key)
	}

	bc.logger.Debug("L1 cache invalidated",
		zap.String("pattern", pattern),
		zap.Int("removed", len(matched)))
}

// Delete removes entry from cache
func (bc *BigCache) Delete(key string) {
	err := bc.cache.Delete(key)
	if err != nil {
		return
	}
}

// Len returns the number of stored entries
func (bc *BigCache) Len() int {
	return bc.cache.Len()
}

// Close stops metrics collection and closes the cache. Repeated calls are no-ops.
func (bc *BigCache) Close() error {
	bc.closeOnce.Do(func() {
		bc.stopMetricsCollection()
		bc.closeErr = bc.cache.Close()
	})
	return bc.closeErr
}

// startMetricsCollection starts periodic metrics collection
func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = periodictask.New(30*time.Second, bc.updateMetrics)
	bc.metricsScheduler.Start()

	// Initial collection
	bc.updateMetrics()

	bc.logger.Debug("Started L1 cache metrics collection")
}

// stopMetricsCollection stops periodic metrics collection
func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped L1 cache metrics collection")
	}
}

// updateMetrics updates cache metrics
func (bc *BigCache) updateMetrics() {
	metrics.UpdateL1CacheCapacity(int64(bc.cache.Capacity()))
	metrics.UpdateCacheKeys("l1", int64(bc.cache.Len()))
}
