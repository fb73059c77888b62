// Package cache keeps recently fetched listing pages so repeated runs over
// the same URL skip the network.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when no page is stored for the URL.
var ErrMiss = errors.New("cache miss")

type PageCache interface {
	Get(ctx context.Context, url string) (string, error)
	Set(ctx context.Context, url, html string) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, error) { return "", ErrMiss }
func (Nop) Set(context.Context, string, string) error   { return nil }

// RedisClient interface for Redis operations (for testing)
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisCache stores pages as plain strings with a fixed TTL.
type RedisCache struct {
	redis  RedisClient
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

type RedisConfig struct {
	TTL    time.Duration
	Prefix string
}

func NewRedisCache(client RedisClient, logger *slog.Logger, config RedisConfig) *RedisCache {
	if config.TTL == 0 {
		config.TTL = 15 * time.Minute
	}
	if config.Prefix == "" {
		config.Prefix = "listing:page:"
	}

	return &RedisCache{
		redis:  client,
		ttl:    config.TTL,
		prefix: config.Prefix,
		logger: logger.With("component", "page_cache"),
	}
}

// Key derives a stable, fixed-length key from the page URL.
func (c *RedisCache) Key(url string) string {
	return c.prefix + uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, error) {
	html, err := c.redis.Get(ctx, c.Key(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cached page: %w", err)
	}

	c.logger.Debug("cache hit", "url", url)
	return html, nil
}

func (c *RedisCache) Set(ctx context.Context, url, html string) error {
	if err := c.redis.Set(ctx, c.Key(url), html, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.redis.Close()
}
