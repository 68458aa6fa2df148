package cache

import (
	"testing"
)

func TestKeyBuilder_Build(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name       string
		resource   string
		preview    bool
		identifier string
		wantKey    string
	}{
		{
			name:     "published list",
			resource: "all-cakes",
			wantKey:  "all-cakes:published",
		},
		{
			name:     "preview list",
			resource: "all-cakes",
			preview:  true,
			wantKey:  "all-cakes:preview",
		},
		{
			name:       "published item by slug",
			resource:   "cake-by-slug",
			identifier: "honey-cake",
			wantKey:    "cake-by-slug:published:honey-cake",
		},
		{
			name:       "preview item by slug",
			resource:   "cake-by-slug",
			preview:    true,
			identifier: "honey-cake",
			wantKey:    "cake-by-slug:preview:honey-cake",
		},
		{
			name:       "identifier with separators",
			resource:   "cakes-by-category",
			identifier: "birthday:kids",
			wantKey:    "cakes-by-category:published:birthday:kids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey := kb.Build(tt.resource, tt.preview, tt.identifier)
			if gotKey != tt.wantKey {
				t.Errorf("Build() gotKey = %v, want %v", gotKey, tt.wantKey)
			}
		})
	}
}

func TestKeyBuilder_ConsistentKeys(t *testing.T) {
	kb := NewKeyBuilder()

	key1 := kb.Build("cake-by-slug", false, "kyiv-cake")
	key2 := kb.Build("cake-by-slug", false, "kyiv-cake")

	if key1 != key2 {
		t.Errorf("Build() should produce same key for same request, got %v and %v", key1, key2)
	}
}

func TestKeyBuilder_DistinctRequests(t *testing.T) {
	kb := NewKeyBuilder()

	keys := []string{
		kb.Build("all-cakes", false, ""),
		kb.Build("all-cakes", true, ""),
		kb.Build("featured-cakes", false, ""),
		kb.Build("cake-by-slug", false, "honey-cake"),
		kb.Build("cake-by-slug", true, "honey-cake"),
		kb.Build("cake-by-slug", false, "honey-cake-2"),
		kb.Build("cakes-by-category", false, "honey-cake"),
	}

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			t.Errorf("Build() produced duplicate key %v for distinct requests", key)
		}
		seen[key] = true
	}
}
