// Package cache provides a small read-through cache for hot community
// views, backed by Redis. The cache is optional: without a configured
// address every lookup is a miss and writes are no-ops.
package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "gravitas:"

// Config configures the Redis connection
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Stats is the shape surfaced by the cache stats endpoint
type Stats struct {
	Enabled bool   `json:"enabled"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Keys    int64  `json:"keys"`
}

// Cache wraps a Redis client with hit/miss accounting
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a Cache. An empty address yields a disabled cache.
func New(cfg Config, logger zerolog.Logger) *Cache {
	c := &Cache{ttl: cfg.TTL, logger: logger}
	if c.ttl <= 0 {
		c.ttl = time.Minute
	}
	if cfg.Addr == "" {
		logger.Info().Msg("Redis address not configured, view cache disabled")
		return c
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return c
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// GetJSON loads a cached value into dest, reporting whether it was found.
// Redis errors count as misses; the caller falls through to the database.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		c.misses.Add(1)
		return false
	}

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		c.misses.Add(1)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache entry not decodable, dropping")
		c.client.Del(ctx, keyPrefix+key)
		c.misses.Add(1)
		return false
	}

	c.hits.Add(1)
	return true
}

// SetJSON stores a value under key with the configured TTL. Failures are
// logged and otherwise ignored; the cache never fails a request.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache value not encodable")
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate removes keys after a write that changes the view they back.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}

// Stats returns counters for the stats endpoint. The key count is read
// from Redis; when disabled or unreachable it is zero.
func (c *Cache) Stats(ctx context.Context) Stats {
	stats := Stats{
		Enabled: c.Enabled(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}

	if c.client != nil {
		keys, err := c.client.DBSize(ctx).Result()
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to read cache key count")
		} else {
			stats.Keys = keys
		}
	}

	return stats
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
