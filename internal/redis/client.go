package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/carmate/internal/config"
	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client used as the shared session tier.
type Client struct {
	client *redis.Client
}

// Connect returns nil without error when no address is configured.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: rdb}, nil
}

// Raw is nil-safe so a disabled tier passes through as a nil *redis.Client.
func (c *Client) Raw() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
