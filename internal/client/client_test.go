package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.MaxRetries = 0
	opts.RetryMin = time.Millisecond
	opts.RetryMax = 5 * time.Millisecond
	opts.RateLimit = 0
	opts.Breaker = resilience.Settings{
		Timeout: time.Minute,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 2
		},
	}
	return opts
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestPress(t *testing.T) {
	var traceHeader atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/press", r.URL.Path)
		traceHeader.Store(r.Header.Get(tracing.HeaderTraceID))
		writeJSON(w, http.StatusOK, types.PressResponse{Result: "raised", RequestID: "req_1", Vehicle: "GREEN"})
	}))
	defer srv.Close()

	c := New(srv.URL, testOptions())
	ctx := tracing.WithTraceID(context.Background(), "trace-42")

	resp, err := c.Press(ctx)
	require.NoError(t, err)
	assert.Equal(t, "raised", resp.Result)
	assert.Equal(t, "req_1", resp.RequestID)
	assert.Equal(t, "GREEN", resp.Vehicle)
	assert.Equal(t, "trace-42", traceHeader.Load())
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)
		writeJSON(w, http.StatusOK, types.Status{
			RunID:          "run_1",
			Running:        true,
			Vehicle:        "RED",
			Pedestrian:     "WALK",
			CrossingActive: true,
			Waits:          types.WaitStats{Count: 2, Mean: 1.5},
		})
	}))
	defer srv.Close()

	status, err := New(srv.URL, testOptions()).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RED", status.Vehicle)
	assert.Equal(t, "WALK", status.Pedestrian)
	assert.True(t, status.CrossingActive)
	assert.Equal(t, 2, status.Waits.Count)
}

func TestClientErrorDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusTooManyRequests, types.ErrorResponse{Error: "slow down"})
	}))
	defer srv.Close()

	c := New(srv.URL, testOptions())
	for i := 0; i < 3; i++ {
		_, err := c.Press(context.Background())
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusTooManyRequests, se.Code)
		assert.Equal(t, "slow down", se.Message)
	}

	assert.Equal(t, int32(3), calls.Load(), "429 must not be retried")
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestServerErrorsTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "boom"})
	}))
	defer srv.Close()

	c := New(srv.URL, testOptions())
	for i := 0; i < 2; i++ {
		_, err := c.Press(context.Background())
		assert.Error(t, err)
	}
	assert.Equal(t, resilience.StateOpen, c.BreakerState())

	_, err := c.Press(context.Background())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, types.PressResponse{Result: "duplicate"})
	}))
	defer srv.Close()

	opts := testOptions()
	opts.MaxRetries = 3
	resp, err := New(srv.URL, opts).Press(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "duplicate", resp.Result)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.PressResponse{Result: "raised"})
	}))
	defer srv.Close()

	opts := testOptions()
	opts.RateLimit = 0.5
	c := New(srv.URL, opts)

	_, err := c.Press(context.Background())
	require.NoError(t, err)

	// The bucket is empty for the next two seconds
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Press(ctx)
	assert.Error(t, err)
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, testOptions()).Status(context.Background())
	assert.Error(t, err)
}
