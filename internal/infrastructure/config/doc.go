// Package config provides 12-factor configuration management for the crosswalk signal.
//
// Configuration is assembled in three layers, each overriding the previous:
//   - Built-in defaults (Default)
//   - An optional TOML or YAML file named by -config or CROSSWALK_CONFIG
//   - Environment variables
//
// Values are read once at startup; the running signal is not reconfigurable.
//
// Configuration Sections:
//   - Timing: phase durations and the sleep slice
//   - Request: randomized button-push range
//   - Input: keyboard device
//   - Display: console colors
//   - Logging: log level, format and destination
//   - Status: optional HTTP status server
//   - RateLimit: per-client limits for remote presses
//
// Example Usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("green lasts %s\n", cfg.Timing.Green)
//
// Environment Variables:
//   - GREEN_TIME, YELLOW_TIME, RED_TIME, CROSSING_TIME, SLEEP_SLICE
//   - REQUEST_MIN, REQUEST_MAX, REQUEST_STEP
//   - INPUT_DEVICE, DISPLAY_COLOR
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - STATUS_ADDR, RATE_LIMIT_RPS, RATE_LIMIT_BURST
//
// Each variable may also be given with its section prefix, e.g.
// TIMING_GREEN_TIME; the prefixed form wins when both are set.
package config
