// Package main is the crosswalk signal.
//
// The signal cycles GREEN, YELLOW_TO_RED, RED, YELLOW_TO_GREEN for vehicles
// and grants pedestrians a WALK phase when the button is pushed. Pushes come
// from the keyboard (any key), from a random generator and, when a status
// address is configured, from POST /api/press.
//
// Configuration:
//   - Environment variables (GREEN_TIME, STATUS_ADDR, LOG_LEVEL, ...)
//   - Optional TOML or YAML file (-config or CROSSWALK_CONFIG)
//   - Defaults for everything else
//
// Usage:
//
//	./crosswalk
//	STATUS_ADDR=:8080 ./crosswalk -config crosswalk.toml
//
// Keys:
//   - q, Q, Ctrl-D: quit
//   - any other key: push the pedestrian button
//
// Signals:
//   - SIGINT, SIGTERM, SIGHUP: graceful shutdown
package main
