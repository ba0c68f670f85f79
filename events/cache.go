package events

import (
	"context"
	"fmt"
)

// CacheDeleter is the part of the cache the invalidator needs.
type CacheDeleter interface {
	DeleteFromCache(ctx context.Context, keys ...string) error
}

// VersionedKey is the cache key of a view computed from the given store
// version. A view filled after a later write lands under a key no reader asks
// for again.
func VersionedKey(key string, version uint64) string {
	return fmt.Sprintf("%s:v%d", key, version)
}

// CacheInvalidator drops the views of the version an event superseded.
func CacheInvalidator(cache CacheDeleter, keys ...string) Publisher {
	return PublisherFunc(func(ctx context.Context, e Event) error {
		if e.Version == 0 {
			return nil
		}
		stale := make([]string, 0, len(keys))
		for _, k := range keys {
			stale = append(stale, VersionedKey(k, e.Version-1))
		}
		return cache.DeleteFromCache(ctx, stale...)
	})
}
