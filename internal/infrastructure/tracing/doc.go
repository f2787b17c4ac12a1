/*
Package tracing provides lightweight tracing for the crosswalk.

# Overview

Spans are collected on a buffered channel and written through zap. Two
producers exist: the HTTP middleware of the status server, and CycleTracer,
which follows each pedestrian crossing from acceptance until vehicles get
GREEN again.

# Usage

	tracer := tracing.New("crosswalk", logger)
	defer tracer.Close()

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Crossing cycles, fed by the controller like any display
	sink := display.Fanout{console, tracing.NewCycleTracer(tracer)}

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

Traces use HTTP headers for propagation:
- X-Trace-ID: identifier for the entire request flow
- X-Span-ID: identifier for the current operation

Crossing cycle traces carry a cyc_ prefixed ID; HTTP traces a req_ one.
*/
package tracing
