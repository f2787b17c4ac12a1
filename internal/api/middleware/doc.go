// Package middleware provides the Gin middleware of the status server:
// CORS for browser dashboards and token-bucket rate limiting of the remote
// button.
package middleware
