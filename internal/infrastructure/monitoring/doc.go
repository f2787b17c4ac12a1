/*
Package monitoring provides metrics collection for the crosswalk signal.

# Overview

This package implements Prometheus-based metrics on a private registry,
tracking the signal cycle, button pushes, request waits and the optional
status server.

# Features

- Phase entries and time spent per vehicle phase
- Button pushes by source (random, keyboard, remote) and outcome
- Accepted crossings and request wait latency
- Rolling wait statistics (mean, stddev, p50, p95) via gonum
- HTTP and WebSocket metrics for the status server
- Process uptime

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Record signal activity (all recorders are nil-safe)
	metrics.RecordPhase("GREEN", 0, false)
	metrics.RecordRequest("keyboard", "raised")
	metrics.RecordAccepted(1200 * time.Millisecond)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
