package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evyataryagoni/whereami/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache using Redis, so several instances of the
// service can share one result cache.
//
// Key format: geo:<ip>
// Value: JSON-encoded GeoResult
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration // 0 = keys never expire
}

// NewRedisCache creates a Redis-backed cache.
//
// Parameters:
//   - addr: Redis server address (e.g., "localhost:6379")
//   - password: Redis password (empty string if no password)
//   - db: Redis database number
//   - ttl: expiry for cached results, 0 for none
//
// Returns an error if the server cannot be reached.
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ctx:    ctx,
		ttl:    ttl,
	}, nil
}

// Get returns the cached result for an IP.
// Redis errors and undecodable values are treated as misses - the cache is
// best-effort and must never fail a lookup.
func (c *RedisCache) Get(ip string) (*models.GeoResult, bool) {
	val, err := c.client.Get(c.ctx, c.key(ip)).Result()
	if err != nil {
		return nil, false
	}

	var result models.GeoResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false
	}

	return &result, true
}

// Set stores a result under the given IP.
// Encoding or Redis errors are swallowed; a failed write only costs a
// re-fetch on the next request.
func (c *RedisCache) Set(ip string, result *models.GeoResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	c.client.Set(c.ctx, c.key(ip), data, c.ttl)
}

// IsEmpty checks whether the cache holds any geolocation results
func (c *RedisCache) IsEmpty() (bool, error) {
	keys, err := c.client.Keys(c.ctx, "geo:*").Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return len(keys) == 0, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *RedisCache) key(ip string) string {
	return fmt.Sprintf("geo:%s", ip)
}
