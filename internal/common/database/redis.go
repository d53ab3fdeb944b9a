package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stack-advisor/internal/common/config"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg config.CacheConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// JSONCache stores JSON documents under a key prefix with a fixed TTL.
type JSONCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache(client *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) Key(id string) string {
	return c.prefix + id
}

// Get decodes the document stored under id into dst. A missing key reports
// false with a nil error.
func (c *JSONCache) Get(ctx context.Context, id string, dst interface{}) (bool, error) {
	val, err := c.client.Get(ctx, c.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", c.Key(id), err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", c.Key(id), err)
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, id string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.Key(id), err)
	}
	if err := c.client.Set(ctx, c.Key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.Key(id), err)
	}
	return nil
}

func (c *JSONCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.Key(id)).Err()
}
