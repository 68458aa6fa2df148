package l2

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
)

const scanBatchSize = 100

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the shared cache tier using Redis/KeyDB
type KeyDBCache struct {
	client interfaces.KeyDbClient
	config *config.KeyDBConfig
	ttl    time.Duration
	clock  clock.Clock
	logger *zap.Logger
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.KeyDBConfig, client interfaces.KeyDbClient, ttl time.Duration, clk clock.Clock, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client: client,
		config: cfg,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}
}

// Get retrieves a valid entry from KeyDB
func (kc *KeyDBCache) Get(key string) (*models.CacheEntry, bool) {
	if kc.ttl <= 0 {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.Connection.ReadTimeout)
	defer cancel()

	data, err := kc.client.Get(ctx, kc.storageKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l2", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		kc.logger.Error("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		return nil, false
	}

	if !entry.IsValid(kc.clock.Now(), kc.ttl) {
		return nil, false
	}

	return &entry, true
}

// Set stores value in KeyDB with the cache TTL as expiration
func (kc *KeyDBCache) Set(key string, val []byte) {
	if kc.ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.Connection.SendTimeout)
	defer cancel()

	entry := models.CacheEntry{
		Data:      val,
		Timestamp: kc.clock.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		kc.logger.Error("Failed to marshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "encode")
		return
	}

	if err := kc.client.Set(ctx, kc.storageKey(key), data, kc.ttl).Err(); err != nil {
		kc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

// Clear removes every key in the cache namespace
func (kc *KeyDBCache) Clear() {
	kc.deleteMatching(EscapeGlob(kc.config.KeyPrefix) + "*")
}

// Invalidate removes keys containing pattern, or the whole namespace for an empty pattern
func (kc *KeyDBCache) Invalidate(pattern string) {
	if pattern == "" {
		kc.Clear()
		return
	}
	kc.deleteMatching(EscapeGlob(kc.config.KeyPrefix) + "*" + EscapeGlob(pattern) + "*")
}

// deleteMatching scans the keyspace for match and deletes every page of hits.
// Each SCAN+DEL round trip gets its own SendTimeout.
func (kc *KeyDBCache) deleteMatching(match string) {
	removed, err := ScanAndDelete(context.Background(), kc.client, match, kc.config.Connection.SendTimeout, nil)
	if err != nil {
		kc.logger.Error("Failed to invalidate L2 cache entries", zap.String("match", match), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
		return
	}

	kc.logger.Debug("L2 cache invalidated", zap.String("match", match), zap.Int("removed", removed))
}

// Close closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	return kc.client.Close()
}

func (kc *KeyDBCache) storageKey(key string) string {
	return kc.config.KeyPrefix + key
}

// ScanAndDelete walks the keyspace with SCAN MATCH and deletes keys accepted by keep.
// A positive pageTimeout bounds every page separately; ctx bounds the whole walk.
func ScanAndDelete(ctx context.Context, client interfaces.KeyDbClient, match string, pageTimeout time.Duration, keep func(string) bool) (int, error) {
	var cursor uint64
	removed := 0
	for {
		next, n, err := scanAndDeletePage(ctx, client, cursor, match, pageTimeout, keep)
		removed += n
		if err != nil {
			return removed, err
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func scanAndDeletePage(ctx context.Context, client interfaces.KeyDbClient, cursor uint64, match string, timeout time.Duration, keep func(string) bool) (uint64, int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	keys, next, err := client.Scan(ctx, cursor, match, scanBatchSize).Result()
	if err != nil {
		return 0, 0, err
	}

	batch := keys[:0]
	for _, key := range keys {
		if keep == nil || keep(key) {
			batch = append(batch, key)
		}
	}
	if len(batch) == 0 {
		return next, 0, nil
	}

	if err := client.Del(ctx, batch...).Err(); err != nil {
		return 0, 0, err
	}
	return next, len(batch), nil
}

// EscapeGlob escapes Redis glob metacharacters so s matches literally
func EscapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
