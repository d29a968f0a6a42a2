package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tiered keeps raw JSON documents in an in-process LRU backed by Redis.
// A nil Redis client makes it a pure L1 cache.
type Tiered struct {
	l1     *LRU[[]byte]
	l2     *redis.Client
	prefix string
	ttl    time.Duration
}

func NewTiered(l1Capacity int, redisClient *redis.Client, prefix string, ttl time.Duration) *Tiered {
	return &Tiered{
		l1:     NewLRU[[]byte](l1Capacity),
		l2:     redisClient,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Tiered) key(k string) string {
	return c.prefix + k
}

func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if val, found := c.l1.Get(key); found {
		return val, true, nil
	}
	if c.l2 == nil {
		return nil, false, nil
	}

	val, err := c.l2.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	c.l1.Set(key, val)
	return val, true, nil
}

func (c *Tiered) Set(ctx context.Context, key string, value []byte) error {
	c.l1.Set(key, value)
	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Tiered) Delete(ctx context.Context, key string) error {
	c.l1.Delete(key)
	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (c *Tiered) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Tiered) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, data)
}
