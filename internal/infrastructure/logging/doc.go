// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Components receive a *Logger through their constructors and call
// OrNop on it, so a nil logger never needs a guard at call sites.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Named("feed").Warn("Fetch failed", zap.Error(err))
package logging
