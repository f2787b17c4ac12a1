package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/generator"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/id"
	"github.com/GriffinCanCode/crosswalk/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers serves the status API of one signal
type Handlers struct {
	state   *crossing.State
	runID   id.RunID
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates the API handlers
func NewHandlers(state *crossing.State, runID id.RunID, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		state:   state,
		runID:   runID,
		metrics: metrics,
		logger:  logger,
	}
}

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.Health{Status: "ok"})
}

// Status returns a snapshot of the signal
func (h *Handlers) Status(c *gin.Context) {
	snap := h.state.Snapshot()
	waits := h.metrics.WaitSummary()

	status := types.Status{
		RunID:          h.runID.String(),
		Running:        snap.Running,
		Vehicle:        snap.Vehicle.String(),
		Pedestrian:     snap.Pedestrian().String(),
		CrossingActive: snap.Crossing,
		Pending:        snap.Pending,
		Waits: types.WaitStats{
			Count:  waits.Count,
			Mean:   waits.Mean,
			StdDev: waits.StdDev,
			P50:    waits.P50,
			P95:    waits.P95,
			Max:    waits.Max,
		},
	}
	if snap.Pending {
		since := snap.PendingSince
		status.PendingSince = &since
	}
	if h.metrics != nil {
		status.Uptime = h.metrics.UptimeDuration().Truncate(time.Millisecond)
	}

	c.JSON(http.StatusOK, status)
}

// Press pushes the button on behalf of a remote client
func (h *Handlers) Press(c *gin.Context) {
	requestID := id.NewRequestID()
	result := h.state.SetRequest()
	h.metrics.RecordRequest(generator.SourceRemote, result.String())

	h.logger.Debug("button pushed",
		zap.String("source", generator.SourceRemote),
		zap.Stringer("result", result),
		zap.String("request_id", requestID.String()),
		zap.String("trace_id", string(tracing.GetTraceID(c.Request.Context()))),
		zap.String("client_ip", c.ClientIP()),
	)

	if result == crossing.RequestIgnored {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "signal is shutting down"})
		return
	}

	code := http.StatusOK
	if result == crossing.RequestRaised {
		code = http.StatusAccepted
	}

	c.JSON(code, types.PressResponse{
		Result:    result.String(),
		RequestID: requestID.String(),
		Vehicle:   h.state.Snapshot().Vehicle.String(),
	})
}
