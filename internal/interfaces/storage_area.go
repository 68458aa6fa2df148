package interfaces

import "context"

//go:generate mockgen -package=mock -source=storage_area.go -destination=mock/storage_area.go

// StorageArea is an enumerable key/value area cleaned up alongside the cache
type StorageArea interface {
	Keys(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, key string) error
}
