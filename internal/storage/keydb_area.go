package storage

import (
	"context"
	"fmt"
	"strings"

	"go-content-cache/internal/cache/l2"
	"go-content-cache/internal/interfaces"
)

const scanBatchSize = 100

// Ensure KeyDBArea implements interfaces.StorageArea
var _ interfaces.StorageArea = (*KeyDBArea)(nil)

// KeyDBArea exposes one KeyDB key namespace as an enumerable storage area.
// Keys are reported and removed relative to the namespace prefix.
type KeyDBArea struct {
	client interfaces.KeyDbClient
	prefix string
}

// NewKeyDBArea creates a storage area over keys starting with prefix
func NewKeyDBArea(client interfaces.KeyDbClient, prefix string) *KeyDBArea {
	return &KeyDBArea{client: client, prefix: prefix}
}

// Keys lists every key in the namespace
func (a *KeyDBArea) Keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	match := l2.EscapeGlob(a.prefix) + "*"
	for {
		page, next, err := a.client.Scan(ctx, cursor, match, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan storage keys: %w", err)
		}
		for _, key := range page {
			keys = append(keys, strings.TrimPrefix(key, a.prefix))
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Remove deletes key from the namespace
func (a *KeyDBArea) Remove(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, a.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove storage key %q: %w", key, err)
	}
	return nil
}
