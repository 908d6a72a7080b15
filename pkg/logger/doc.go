// Package logger provides a structured logging interface for standardspull.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors on stderr
// - Optional file output
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "standardspull/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("sync started")
//	logger.WithField("jurisdiction", "california").Info("fetching standard sets")
//	logger.WithError(err).Error("failed to save standard set")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "syncer").
//	    WithField("run_id", runID)
//
//	// Use structured logging
//	log.InfoWithFields("standard set saved", map[string]interface{}{
//	    "set_id": "DA39A3EE",
//	    "path":   "standards/california/math/grade-8__da39a3ee.json",
//	})
package logger
