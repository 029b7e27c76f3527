package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Client wraps a Redis connection used as a read-path cache.
type Client struct {
	rdb *redis.Client
}

// MustNewClient creates a new Redis client.
func MustNewClient() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: viper.GetString("redis.addr"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect to redis: " + err.Error())
	}

	return &Client{rdb: rdb}
}

// Get returns the cached value for key, or "" when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return val, nil
}

// Set stores value under key with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.rdb.Close()
}
