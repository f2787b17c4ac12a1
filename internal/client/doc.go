// Package client is a remote button for a crosswalk running a status server.
//
// Requests go through resty on top of a retryablehttp transport, are paced
// by a token bucket and guarded by a circuit breaker. JSON is encoded with
// sonic. Trace context found on the request context is forwarded in the
// X-Trace-ID and X-Span-ID headers.
package client
