// Package config provides 12-factor configuration management for the dashboard backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Storage: State store backend, directory, key, Redis address
//   - Feed: Feed-to-JSON endpoint, timeout, retries, client rate limit
//   - Widgets: HTML sanitising and render concurrency
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - STORAGE_BACKEND, STORAGE_PATH, STORAGE_KEY, REDIS_ADDR, REDIS_DB
//   - FEED_ENDPOINT, FEED_TIMEOUT, FEED_RETRIES, FEED_RATE_LIMIT
//   - WIDGET_SANITIZE_HTML, RENDER_CONCURRENCY
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
