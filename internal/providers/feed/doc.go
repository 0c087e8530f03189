// Package feed fetches RSS and Atom feeds through a feed-to-JSON endpoint.
//
// The endpoint is called as GET {endpoint}?url=<feed url> and answers
// {"status":"ok","items":[{"title","link","description","pubDate"}]}.
// Requests go through a rate limiter, a circuit breaker and a retrying
// transport, and every fetch is timed into Prometheus.
package feed
