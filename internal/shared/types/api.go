package types

import "time"

// Health is the body of the liveness endpoint
type Health struct {
	Status string `json:"status"`
}

// WaitStats summarizes how long recent requests waited for acceptance
type WaitStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_seconds"`
	StdDev float64 `json:"stddev_seconds"`
	P50    float64 `json:"p50_seconds"`
	P95    float64 `json:"p95_seconds"`
	Max    float64 `json:"max_seconds"`
}

// Status is a consistent snapshot of the signal
type Status struct {
	RunID          string        `json:"run_id"`
	Running        bool          `json:"running"`
	Vehicle        string        `json:"vehicle"`
	Pedestrian     string        `json:"pedestrian"`
	CrossingActive bool          `json:"crossing_active"`
	Pending        bool          `json:"pending"`
	PendingSince   *time.Time    `json:"pending_since,omitempty"`
	Uptime         time.Duration `json:"uptime_ns"`
	Waits          WaitStats     `json:"waits"`
}

// PressResponse reports what a remote button push did
type PressResponse struct {
	Result    string `json:"result"`
	RequestID string `json:"request_id"`
	Vehicle   string `json:"vehicle"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// WebSocket message types
const (
	WSTypePhase = "phase"
	WSTypePing  = "ping"
	WSTypePong  = "pong"
	WSTypeError = "error"
)

// WSMessage is a frame on the live phase stream
type WSMessage struct {
	Type           string    `json:"type"`
	Vehicle        string    `json:"vehicle,omitempty"`
	Pedestrian     string    `json:"pedestrian,omitempty"`
	CrossingActive bool      `json:"crossing_active,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
	Message        string    `json:"message,omitempty"`
}
