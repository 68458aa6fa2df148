package interfaces

import (
	"go-content-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for content cache stores
type Cache interface {
	Get(key string) (*models.CacheEntry, bool) // returns entry and found flag, misses on expiry
	Set(key string, val []byte)
	Clear()
	Invalidate(pattern string) // removes keys containing pattern, everything when empty
}
