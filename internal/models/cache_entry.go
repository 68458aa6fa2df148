package models

import (
	"time"
)

// CacheEntry is a cached content payload with the moment it was stored
type CacheEntry struct {
	Data      []byte    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// IsValid reports whether the entry is still within ttl at the given time.
// A non-positive ttl disables caching, so no entry is ever valid.
func (e *CacheEntry) IsValid(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.Timestamp) < ttl
}

// Age returns how long ago the entry was stored
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

// CacheStatus describes how a content request was served
type CacheStatus string

const (
	CacheStatusHit    CacheStatus = "HIT"
	CacheStatusMiss   CacheStatus = "MISS"
	CacheStatusBypass CacheStatus = "BYPASS"
)
