package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinicdesk/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client from AppConfig.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	CacheClient = client
	return nil
}

// ErrCacheMiss is returned by JSONCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// JSONCache stores JSON-encoded values under a fixed key prefix with one TTL.
type JSONCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

// NewJSONCache returns nil when client is nil so callers can run without redis.
func NewJSONCache(client *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultDashboardCacheTTL
	}
	return &JSONCache{Client: client, Prefix: prefix, TTL: ttl}
}

func (c *JSONCache) key(k string) string {
	return c.Prefix + k
}

// Get decodes the cached value into dest.
func (c *JSONCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return nil
}

// Set stores value under key with the cache TTL.
func (c *JSONCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.Client.Set(ctx, c.key(key), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// InvalidateAll deletes every key under the cache prefix.
func (c *JSONCache) InvalidateAll(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, c.Prefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.Client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += int(n)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
