// Package middleware provides the gin middleware shared by every route:
// CORS, per-IP rate limiting and request IDs.
package middleware
