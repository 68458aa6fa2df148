package noop

import (
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache used when caching is disabled (real-time mode)
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() interfaces.Cache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpCache) Set(key string, val []byte) {
	// No-op
}

// Clear does nothing
func (n *NoOpCache) Clear() {
	// No-op
}

// Invalidate does nothing
func (n *NoOpCache) Invalidate(pattern string) {
	// No-op
}
