// Package redisad backs the review list and stats caches with Redis.
package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
)

const cacheLabel = "redis"

// Cache stores JSON values. It satisfies domain.Cache.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewFromClient(c *redis.Client) *Cache { return &Cache{c: c} }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

// Get decodes key into dst. A value that no longer decodes is dropped and
// reported as a miss so the caller repopulates it.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.c.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.ObserveCache(cacheLabel, observability.CacheMiss)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("dropping undecodable cache entry")
		_ = r.c.Del(ctx, key).Err()
		observability.ObserveCache(cacheLabel, observability.CacheMiss)
		return false, nil
	}
	observability.ObserveCache(cacheLabel, observability.CacheHit)
	return true, nil
}

// Set stores v as JSON; ttlSec <= 0 keeps it until deleted.
func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	ttl := time.Duration(0)
	if ttlSec > 0 {
		ttl = time.Duration(ttlSec) * time.Second
	}
	observability.ObserveCache(cacheLabel, observability.CacheSet)
	return r.c.Set(ctx, key, b, ttl).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache(cacheLabel, observability.CacheDel)
	return r.c.Del(ctx, key).Err()
}

// Incr bumps a counter stored as a plain integer, which Get decodes as JSON.
func (r *Cache) Incr(ctx context.Context, key string) (int64, error) {
	observability.ObserveCache(cacheLabel, observability.CacheIncr)
	return r.c.Incr(ctx, key).Result()
}
