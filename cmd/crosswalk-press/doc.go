// Package main pushes a crosswalk's pedestrian button over HTTP.
//
// It posts to /api/press on a signal started with STATUS_ADDR. Transient
// failures are retried with backoff; repeated server errors open a circuit
// breaker for the rest of the invocation.
//
// Usage:
//
//	./crosswalk-press -addr http://localhost:8080
//	./crosswalk-press -addr http://localhost:8080 -status
package main
