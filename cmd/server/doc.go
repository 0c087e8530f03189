// Package main is the entry point for the dashboard server.
//
// The server keeps a set of dashboards, each an ordered list of widgets
// (HTML snippets, RSS feeds, Google News searches and GitHub repository
// activity), persists them in a key-value store and renders them as cards.
//
// The server provides:
//   - REST API for dashboard and widget management
//   - Server-rendered dashboard pages
//   - WebSocket streaming of live widget cards
//   - JSON/YAML/TOML export and import of the whole configuration
//   - Prometheus metrics, rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# File store under /var/lib/dashboard
//	./server -port 8000 -data /var/lib/dashboard
//
//	# Development mode (console logs, debug level)
//	./server -dev
//
//	# Redis-backed state
//	STORAGE_BACKEND=redis REDIS_ADDR=localhost:6379 ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
