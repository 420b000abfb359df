// Package cache provides a Redis-backed shared cache for assessment
// results. It is optional; the server runs without it when caching is
// disabled in configuration.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthassist-server/internal/domain"
)

// ResultCache wraps a Redis client for storing serialized assessment
// results keyed by input digest.
type ResultCache struct {
	redis      *redis.Client
	defaultTTL time.Duration
}

// New creates a result cache from the cache configuration and verifies
// connectivity.
func New(config *domain.CacheConfig) (*ResultCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.PoolTimeout = config.PoolTimeout
	opts.MaxRetries = config.MaxRetries

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ResultCache{
		redis:      client,
		defaultTTL: config.DefaultTTL,
	}, nil
}

// Get retrieves a cached entry. A miss is reported with domain.ErrNotFound.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return val, nil
}

// Set stores an entry with the default TTL.
func (c *ResultCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.redis.Set(ctx, key, data, c.defaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Health checks Redis connectivity.
func (c *ResultCache) Health(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (c *ResultCache) Close() error {
	return c.redis.Close()
}
