package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the cache contract used by the application layer
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

// ErrCacheMiss is returned when a key is not present in the cache
var ErrCacheMiss = redis.Nil

// RedisClient implements Client backed by Redis
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient creates a Redis-backed cache client and verifies connectivity
func NewRedisClient(addr, password string, db int) (Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get retrieves the value for a key
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value for a key with an expiration
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete removes a key from the cache
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// SetNX stores a value only if the key does not already exist. Used as a
// lightweight distributed lock for scheduled jobs.
func (c *RedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, expiration).Result()
}
