// Package cache provides a redis read-through cache for the public catalog
// listings. A nil *ListCache is a valid no-op, so callers never branch on
// whether redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache connects to redis and verifies the connection.
func NewListCache(addr, password string, ttl time.Duration) (*ListCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ListCache{client: rdb, ttl: ttl}, nil
}

// Get unmarshals the cached value under key into dest. The second return is
// false on a miss.
func (c *ListCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores val under key for the configured TTL.
func (c *ListCache) Set(ctx context.Context, key string, val any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops the given keys, typically after an admin write.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
