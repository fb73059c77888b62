// Package app assembles the listing pipeline from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maltedev/wheel-listing-scraper/internal/cache"
	"github.com/maltedev/wheel-listing-scraper/internal/config"
	"github.com/maltedev/wheel-listing-scraper/internal/events"
	"github.com/maltedev/wheel-listing-scraper/internal/fetcher"
	"github.com/maltedev/wheel-listing-scraper/internal/parser"
	"github.com/maltedev/wheel-listing-scraper/internal/ratelimit"
	"github.com/maltedev/wheel-listing-scraper/internal/scraper"
)

// App holds the pipeline and the resources it owns.
type App struct {
	Service *scraper.Service
	closers []func() error
}

// New builds the service. When Redis is configured it must be reachable and
// backs both the page cache and the listing event stream.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}
	var publisher events.Publisher = events.Nop{}

	opts := FetchOptions(cfg.Fetch)

	if cfg.Fetch.MinInterval > 0 {
		opts.Limiter = ratelimit.NewAdaptiveRateLimiter(cfg.Fetch.MinInterval, cfg.Fetch.MaxInterval)
	}

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		pages := cache.NewRedisCache(redisClient, logger, cache.RedisConfig{TTL: cfg.Redis.CacheTTL})
		opts.Cache = pages
		a.closers = append(a.closers, pages.Close)
		logger.Info("page cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)

		if cfg.Redis.EventStream != "" {
			publisher = events.NewStreamPublisher(redisClient, logger, events.StreamConfig{
				Stream: cfg.Redis.EventStream,
				MaxLen: cfg.Redis.EventStreamMax,
			})
			logger.Info("listing events enabled", "stream", cfg.Redis.EventStream)
		}
	}

	f := fetcher.New(opts, logger)
	a.Service = scraper.NewService(
		scraper.NewExtractor(f, logger),
		parser.NewWheelParser(),
		logger,
	).WithPublisher(publisher)
	return a, nil
}

// FetchOptions maps the fetch configuration onto fetcher options.
func FetchOptions(cfg config.FetchConfig) fetcher.Options {
	opts := fetcher.DefaultOptions()
	opts.Timeout = cfg.Timeout
	opts.Attempts = cfg.Attempts
	opts.Backoff = cfg.Backoff
	opts.InitialDelay = cfg.InitialDelay
	opts.MaxDelay = cfg.MaxDelay
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	opts.MaxBodyBytes = cfg.MaxBodyBytes
	return opts
}

func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
