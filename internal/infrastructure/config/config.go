package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Feed      FeedConfig
	Widgets   WidgetConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StorageConfig selects and configures the state store.
type StorageConfig struct {
	Backend   string `envconfig:"STORAGE_BACKEND" default:"file"` // "file", "memory", "redis"
	Path      string `envconfig:"STORAGE_PATH" default:"/tmp/dashboard-storage"`
	Key       string `envconfig:"STORAGE_KEY" default:"dashboard_app_state"`
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
}

// FeedConfig holds feed-to-JSON endpoint configuration.
type FeedConfig struct {
	Endpoint  string        `envconfig:"FEED_ENDPOINT" default:"https://ar-xr.com/dashboard/rss-to-json.php"`
	Timeout   time.Duration `envconfig:"FEED_TIMEOUT" default:"15s"`
	Retries   int           `envconfig:"FEED_RETRIES" default:"2"`
	RateLimit float64       `envconfig:"FEED_RATE_LIMIT" default:"0"` // requests per second, 0 = unlimited
}

// WidgetConfig holds widget rendering options.
type WidgetConfig struct {
	SanitizeHTML      bool `envconfig:"WIDGET_SANITIZE_HTML" default:"false"`
	RenderConcurrency int  `envconfig:"RENDER_CONCURRENCY" default:"8"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
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

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "memory", "redis":
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q (want file, memory or redis)", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("STORAGE_KEY cannot be empty")
	}
	if c.Feed.Endpoint == "" {
		return fmt.Errorf("FEED_ENDPOINT cannot be empty")
	}
	if c.Widgets.RenderConcurrency < 1 {
		return fmt.Errorf("RENDER_CONCURRENCY must be at least 1")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Backend:   "file",
			Path:      "/tmp/dashboard-storage",
			Key:       "dashboard_app_state",
			RedisAddr: "localhost:6379",
		},
		Feed: FeedConfig{
			Endpoint: "https://ar-xr.com/dashboard/rss-to-json.php",
			Timeout:  15 * time.Second,
			Retries:  2,
		},
		Widgets: WidgetConfig{
			SanitizeHTML:      false,
			RenderConcurrency: 8,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
