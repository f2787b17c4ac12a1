// Package http implements the REST handlers of the status server.
//
// Endpoints:
//   - GET  /health      liveness
//   - GET  /api/status  signal snapshot with request wait statistics
//   - POST /api/press   remote button push; 202 when it raised a request,
//     200 when it was a duplicate or dropped during a crossing, 503 once
//     shutdown has begun
package http
