package controller

import (
	"context"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Display receives the phase pair once per phase entry. Implementations must
// return quickly; a slow display delays the signal.
type Display interface {
	Render(vehicle crossing.VehiclePhase, pedestrian crossing.PedestrianPhase, crossingActive bool)
}

// Timing holds the phase durations
type Timing struct {
	Green    time.Duration
	Yellow   time.Duration
	Red      time.Duration
	Crossing time.Duration
	Slice    time.Duration
}

// DefaultTiming returns the stock intersection timing
func DefaultTiming() Timing {
	return Timing{
		Green:    10 * time.Second,
		Yellow:   3 * time.Second,
		Red:      7 * time.Second,
		Crossing: 10 * time.Second,
		Slice:    crossing.DefaultSlice,
	}
}

// Dwell returns how long the signal stays in phase p
func (t Timing) Dwell(p crossing.VehiclePhase, crossingActive bool) time.Duration {
	switch p {
	case crossing.Green:
		return t.Green
	case crossing.Red:
		if crossingActive {
			return t.Crossing
		}
		return t.Red
	default:
		return t.Yellow
	}
}

// Controller drives the vehicle phase cycle and accepts pedestrian requests.
type Controller struct {
	state   *crossing.State
	timer   *crossing.Timer
	display Display
	timing  Timing
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New creates a controller. A nil logger discards output.
func New(state *crossing.State, display Display, timing Timing, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		state:   state,
		timer:   crossing.NewTimer(state, timing.Slice),
		display: display,
		timing:  timing,
		logger:  logger,
	}
}

// WithMetrics attaches a metrics collector
func (c *Controller) WithMetrics(m *monitoring.Metrics) *Controller {
	c.metrics = m
	return c
}

// Run cycles the signal until shutdown is requested on the shared state or
// ctx is cancelled. Any request still pending on exit is discarded.
func (c *Controller) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.state.RequestShutdown() })
	defer stop()
	defer c.state.ClearRequest()

	c.logger.Info("controller started",
		zap.Duration("green", c.timing.Green),
		zap.Duration("yellow", c.timing.Yellow),
		zap.Duration("red", c.timing.Red),
		zap.Duration("crossing", c.timing.Crossing),
	)
	defer c.logger.Info("controller stopped")

	phase := crossing.Green
	deadline := c.enter(phase)

	for c.state.IsRunning() {
		if phase == crossing.Green {
			if waited, ok := c.state.TryConsumeRequest(); ok {
				c.logger.Info("request accepted", zap.Duration("waited", waited))
				c.metrics.RecordAccepted(waited)
				phase, deadline = c.advance(phase)
				continue
			}
		}

		if remaining := time.Until(deadline); remaining > 0 {
			// Only GREEN can be cut short by a request
			c.timer.Sleep(remaining, phase == crossing.Green)
			continue
		}

		phase, deadline = c.advance(phase)
	}

	return nil
}

// advance leaves phase and enters the next one
func (c *Controller) advance(phase crossing.VehiclePhase) (crossing.VehiclePhase, time.Time) {
	if phase == crossing.Red && c.state.IsCrossing() {
		c.state.EndCrossing()
		c.logger.Info("crossing complete")
	}

	next := phase.Next()
	return next, c.enter(next)
}

// enter publishes phase, renders it and returns its deadline
func (c *Controller) enter(phase crossing.VehiclePhase) time.Time {
	c.state.SetPhase(phase)
	snap := c.state.Snapshot()
	dwell := c.timing.Dwell(phase, snap.Crossing)

	c.logger.Debug("phase entered",
		zap.Stringer("vehicle", phase),
		zap.Stringer("pedestrian", phase.Pedestrian()),
		zap.Bool("crossing", snap.Crossing),
		zap.Duration("dwell", dwell),
	)
	c.display.Render(phase, phase.Pedestrian(), snap.Crossing)
	c.metrics.RecordPhase(phase.String(), int(phase), snap.Crossing)

	return time.Now().Add(dwell)
}
