/*
Package monitoring provides Prometheus metrics for the dashboard service.

# Overview

Each Metrics value owns a private registry, so several servers (or tests)
can live in one process without duplicate-registration panics. All
recorders accept a nil receiver and do nothing, which lets domain
components take an optional *Metrics.

# Metrics

- HTTP requests by route template and status
- Dashboard and widget counts
- State saves and imports by outcome
- Feed fetch counts and latency by outcome
- Widget renders by type and outcome
- WebSocket connections and messages

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics)
	// ... fetch ...
	timer.Stop(monitoring.OutcomeSuccess)
*/
package monitoring
