// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The crosswalk binary shares its terminal between the signal display
// (stdout) and the logs, so the default level is warn and the default output
// is stderr. Point LOG_FILE at a file to keep a full debug trail.
//
// Example Usage:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging))
//	logger = logger.WithRun(runID.String())
//	logger.Component("generator").Debug("Request raised")
package logging
