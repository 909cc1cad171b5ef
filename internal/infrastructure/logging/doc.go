// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// The registry and its collaborators share one convention: resolution
// misses log at Warn, self-healing actions at Info, filesystem failures at
// Error. Nothing in this subsystem logs at Fatal; path problems must never
// take a collaborating application down.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("path registered", zap.String("key", "DB_PATH"))
package logging
