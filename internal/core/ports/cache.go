// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository is the read-through cache in front of the entity
// repositories, plus the upload dedupe marker. Keys look like
// wh:<entity>:<id>; see services.CacheKey.
type CacheRepository interface {
	// GetOrSet decodes key into dest. On a miss it calls fetch and stores
	// the result for ttl. Fetch errors are returned unchanged.
	GetOrSet(ctx context.Context, key string, dest any, fetch func() (any, error), ttl time.Duration) error

	// Delete drops single entries after an update or delete
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern drops every entry matching a glob, used after an
	// ingest rewrote a whole table
	DeletePattern(ctx context.Context, pattern string) error

	// SetNX reports whether value was stored, i.e. key was absent
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
}
