// Package cache provides the optional redis-backed cache for aggregated
// public-data lookups. Third-party data is volatile, so entries carry a
// short TTL; writes are idempotent per normalized address, which keeps
// concurrent duplicate lookups safe.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"propboard/internal/model"
)

const keyPrefix = "lookup:"

// LookupCache caches aggregated lookup results by normalized address.
// All operations are best-effort: a cache problem is logged and treated as
// a miss, never surfaced to the caller.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLookupCache connects to redis and returns a cache with the given TTL.
func NewLookupCache(addr, password string, db int, ttl time.Duration) *LookupCache {
	return &LookupCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies the connection.
func (c *LookupCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached aggregation for a normalized address key, if any.
func (c *LookupCache) Get(ctx context.Context, key string) (*model.AggregatedPropertyData, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("lookup cache: get failed for %q: %v", key, err)
		}
		return nil, false
	}

	var data model.AggregatedPropertyData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("lookup cache: corrupt entry for %q: %v", key, err)
		return nil, false
	}
	return &data, true
}

// Set stores an aggregation under a normalized address key.
func (c *LookupCache) Set(ctx context.Context, key string, data *model.AggregatedPropertyData) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("lookup cache: marshal failed for %q: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		log.Printf("lookup cache: set failed for %q: %v", key, err)
	}
}

// Close releases the redis connection.
func (c *LookupCache) Close() error {
	return c.client.Close()
}
