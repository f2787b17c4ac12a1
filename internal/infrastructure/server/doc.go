// Package server wires the optional status server.
//
// The router carries recovery, tracing, metrics and CORS middleware, and a
// per-client rate limit on the press endpoint:
//   - GET  /health
//   - GET  /api/status
//   - POST /api/press
//   - GET  /metrics
//   - GET  /stream (websocket)
//
// Server Lifecycle:
//  1. New builds the router from the signal state and observability deps
//  2. Run (or Serve with an existing listener) accepts connections
//  3. When the context ends, stream subscribers are disconnected and the
//     HTTP server shuts down gracefully
//
// Example Usage:
//
//	srv := server.New(server.Config{Addr: ":8080", RateLimit: rl, CORS: cors}, deps)
//	err := srv.Run(ctx)
package server
