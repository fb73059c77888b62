package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Redis   RedisConfig
	Logging LogConfig
}

type ServerConfig struct {
	Port int `envconfig:"PORT" default:"8084"`
}

type FetchConfig struct {
	Timeout      time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	Attempts     int           `envconfig:"FETCH_ATTEMPTS" default:"3"`
	Backoff      float64       `envconfig:"FETCH_BACKOFF" default:"1.5"`
	InitialDelay time.Duration `envconfig:"FETCH_INITIAL_DELAY" default:"1500ms"`
	MaxDelay     time.Duration `envconfig:"FETCH_MAX_DELAY" default:"30s"`
	UserAgent    string        `envconfig:"FETCH_USER_AGENT"`
	MaxBodyBytes int64         `envconfig:"FETCH_MAX_BODY_BYTES" default:"5242880"`

	// MinInterval spaces consecutive fetches; zero disables rate limiting.
	MinInterval time.Duration `envconfig:"FETCH_MIN_INTERVAL" default:"0s"`
	MaxInterval time.Duration `envconfig:"FETCH_MAX_INTERVAL" default:"0s"`
}

// RedisConfig enables the page cache when Addr is set.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	// EventStream receives a LISTING_PROCESSED entry per run; empty disables events.
	EventStream    string `envconfig:"EVENT_STREAM" default:"stream:listing_processed"`
	EventStreamMax int64  `envconfig:"EVENT_STREAM_MAXLEN" default:"10000"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Fetch.Attempts < 1 {
		return fmt.Errorf("at least 1 fetch attempt is required")
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive: %s", c.Fetch.Timeout)
	}

	if c.Fetch.Backoff < 1 {
		return fmt.Errorf("fetch backoff must be at least 1: %g", c.Fetch.Backoff)
	}

	if c.Fetch.InitialDelay < 0 || c.Fetch.MinInterval < 0 {
		return fmt.Errorf("fetch delays must not be negative")
	}

	if c.Fetch.MaxInterval != 0 && c.Fetch.MaxInterval < c.Fetch.MinInterval {
		return fmt.Errorf("fetch max interval %s is below min interval %s", c.Fetch.MaxInterval, c.Fetch.MinInterval)
	}

	if c.Redis.Addr != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when redis is enabled")
	}

	if c.Redis.EventStreamMax < 0 {
		return fmt.Errorf("event stream max length must not be negative: %d", c.Redis.EventStreamMax)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Logging.Format)
	}

	return nil
}
