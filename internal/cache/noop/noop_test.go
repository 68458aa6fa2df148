package noop

import (
	"testing"

	"go-content-cache/internal/interfaces"
)

func TestNewNoOpCache(t *testing.T) {
	cache := NewNoOpCache()

	// Verify it implements the Cache interface
	var _ interfaces.Cache = cache

	// Verify it returns a NoOpCache instance
	if _, ok := cache.(*NoOpCache); !ok {
		t.Errorf("NewNoOpCache() should return a *NoOpCache instance")
	}
}

func TestNoOpCache_Get(t *testing.T) {
	cache := NewNoOpCache()

	testCases := []string{
		"all-cakes:published",
		"",
		"cake-by-slug:published:very-long-slug-with-special-characters-!@#$%^&*()",
	}

	for _, key := range testCases {
		t.Run("key="+key, func(t *testing.T) {
			entry, found := cache.Get(key)

			if entry != nil {
				t.Errorf("Get(%q) entry = %v, want nil", key, entry)
			}
			if found {
				t.Errorf("Get(%q) found = %v, want false", key, found)
			}
		})
	}
}

func TestNoOpCache_Set(t *testing.T) {
	cache := NewNoOpCache()

	testCases := []struct {
		key string
		val []byte
	}{
		{"all-cakes:published", []byte(`[{"name":"Honey Cake"}]`)},
		{"", []byte("")},
		{"binary-key", []byte{0x01, 0x02, 0x03, 0xFF}},
	}

	for _, tc := range testCases {
		t.Run("key="+tc.key, func(t *testing.T) {
			cache.Set(tc.key, tc.val)

			// Verify it's still a cache miss after setting
			entry, found := cache.Get(tc.key)
			if entry != nil || found {
				t.Errorf("After Set(%q), Get() = (%v, %v), want (nil, false)", tc.key, entry, found)
			}
		})
	}
}

func TestNoOpCache_ClearAndInvalidate(t *testing.T) {
	cache := NewNoOpCache()

	// Should not panic
	cache.Clear()
	cache.Invalidate("cake")
	cache.Invalidate("")

	entry, found := cache.Get("cake")
	if entry != nil || found {
		t.Errorf("Get() after Clear/Invalidate = (%v, %v), want (nil, false)", entry, found)
	}
}

func TestNoOpCache_ConcurrentAccess(t *testing.T) {
	cache := NewNoOpCache()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() { done <- true }()

			key := "concurrent-key"
			cache.Set(key, []byte("concurrent-value"))
			cache.Get(key)
			cache.Invalidate(key)
			cache.Clear()
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
