// Package types provides the wire types of the crosswalk status API.
//
// The status server encodes them and the remote press client decodes them,
// so both sides agree on one definition.
//
// Core Types:
//   - Status: snapshot of the signal served by /api/status
//   - PressResponse: outcome of a remote button push
//   - Health: liveness answer of /health
//   - WSMessage: frames exchanged on /stream
//
// Example Usage:
//
//	resp := types.PressResponse{
//	    Result:    crossing.RequestRaised.String(),
//	    RequestID: string(id.NewRequestID()),
//	}
package types
