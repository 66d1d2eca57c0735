package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache implements cache.Remote using Redis. It is the shared tier of
// the balance cache: values survive process restarts and are visible to
// every instance.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "coinbank:",
	}
}

// Get retrieves a value by key. A missing key is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, err
	}

	return val, true, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Remove deletes a key, reporting whether it was present.
func (c *Cache) Remove(ctx context.Context, key string) (bool, error) {
	removed, err := c.client.Del(ctx, c.prefix+key).Result()
	if err != nil {
		return false, err
	}

	return removed > 0, nil
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
