// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// uploadPrefix namespaces the dedupe markers of queued workbooks, apart
// from the wh: entity entries.
const uploadPrefix = "upload:"

// scanBatch is both the SCAN count hint and the UNLINK batch size
const scanBatch = 200

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// Cache stores entities as JSON in Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache creates a cache whose entries default to ttl
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cache")),
	}
}

// UploadDedupeKey is the marker key for a workbook with the given digest
func UploadDedupeKey(digest string) string {
	return uploadPrefix + digest
}

// Set stores value for ttl, or for the cache default when ttl is zero
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &CacheError{Op: "marshal", Key: key, Err: err}
	}
	if err := c.client.Set(ctx, key, data, c.expiry(ttl)).Err(); err != nil {
		return &CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Get decodes key into dest. A missing key yields ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return &CacheError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &CacheError{Op: "unmarshal", Key: key, Err: err}
	}
	return nil
}

// GetOrSet reads key into dest. On a miss, or when the stored entry no
// longer decodes into dest, it calls fetch and caches the result. A fetch
// error is returned wrapped and nothing is stored. A failed write after a
// successful fetch is only logged.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest any, fetch func() (any, error), ttl time.Duration) error {
	err := c.Get(ctx, key, dest)
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
		return nil
	case errors.Is(err, ErrCacheMiss):
	case isOp(err, "unmarshal"):
		c.logger.WarnContext(ctx, "dropping undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
	default:
		return err
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch error: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return &CacheError{Op: "marshal", Key: key, Err: err}
	}
	if err := c.client.Set(ctx, key, data, c.expiry(ttl)).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to cache value after fetch",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return &CacheError{Op: "unmarshal", Key: key, Err: err}
	}
	return nil
}

// Delete removes keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return &CacheError{Op: "del", Key: keys[0], Err: err}
	}
	c.logger.DebugContext(ctx, "cache invalidated", slog.Int("keys", len(keys)))
	return nil
}

// DeletePattern unlinks every key matching the glob in batches, so a
// large table does not build one huge DEL.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	// keys are collected before unlinking so the cursor walks an unchanged
	// keyspace
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return &CacheError{Op: "scan", Key: pattern, Err: err}
	}

	keys = lo.Uniq(keys)
	for _, batch := range lo.Chunk(keys, scanBatch) {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return &CacheError{Op: "unlink", Key: pattern, Err: err}
		}
	}

	c.logger.DebugContext(ctx, "cache pattern invalidated",
		slog.String("pattern", pattern),
		slog.Int("keys", len(keys)))
	return nil
}

// SetNX stores value only when key is absent and reports whether it did
func (c *Cache) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, &CacheError{Op: "marshal", Key: key, Err: err}
	}
	ok, err := c.client.SetNX(ctx, key, data, c.expiry(ttl)).Result()
	if err != nil {
		return false, &CacheError{Op: "setnx", Key: key, Err: err}
	}
	return ok, nil
}

func (c *Cache) expiry(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return c.ttl
}

// CacheError wraps a failed Redis or encoding step
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

func isOp(err error, op string) bool {
	var ce *CacheError
	return errors.As(err, &ce) && ce.Op == op
}
