package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/crosswalk/internal/api/middleware"
	"github.com/GriffinCanCode/crosswalk/internal/api/ws"
	"github.com/GriffinCanCode/crosswalk/internal/controller"
	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/display"
	"github.com/GriffinCanCode/crosswalk/internal/generator"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/config"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/server"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/id"
)

const serviceName = "crosswalk"

var ErrNilInput = errors.New("character input is required")

// Input is the character source the keyboard generator reads. It is closed
// on shutdown to unblock a pending read.
type Input interface {
	generator.CharReader
	io.Closer
}

// App owns one run of the signal: shared state, the controller, both
// generators and the optional status server.
type App struct {
	cfg    *config.Config
	logger *logging.Logger
	runID  id.RunID

	state   *crossing.State
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	cycles  *tracing.CycleTracer
	hub     *ws.Hub

	controller *controller.Controller
	random     *generator.Random
	manual     *generator.Manual
	server     *server.Server

	coordinator *Coordinator
}

// New wires the components for one run. The display writes to out.
func New(cfg *config.Config, logger *logging.Logger, input Input, out io.Writer) (*App, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	delays := generator.Range{
		Min:  cfg.Request.Min.Std(),
		Max:  cfg.Request.Max.Std(),
		Step: cfg.Request.Step.Std(),
	}
	if err := delays.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	timing := controller.Timing{
		Green:    cfg.Timing.Green.Std(),
		Yellow:   cfg.Timing.Yellow.Std(),
		Red:      cfg.Timing.Red.Std(),
		Crossing: cfg.Timing.Crossing.Std(),
		Slice:    cfg.Timing.Slice.Std(),
	}

	runID := id.NewRunID()
	logger = logger.WithRun(runID.String())

	a := &App{
		cfg:     cfg,
		logger:  logger,
		runID:   runID,
		state:   crossing.NewState(),
		metrics: monitoring.NewMetrics(),
	}
	a.tracer = tracing.New(serviceName, logger.Component("tracing"))
	a.cycles = tracing.NewCycleTracer(a.tracer)

	sinks := display.Fanout{display.NewConsole(out, cfg.Display.Color), a.cycles}
	if cfg.Status.Enabled() {
		a.hub = ws.NewHub(logger.Component("stream"), a.metrics)
		sinks = append(sinks, a.hub)
	}

	a.controller = controller.New(a.state, sinks, timing, logger.Component("controller")).
		WithMetrics(a.metrics)
	a.random = generator.NewRandom(a.state, delays, timing.Slice, logger.Component("random")).
		WithMetrics(a.metrics)
	a.manual = generator.NewManual(a.state, input, logger.Component("keyboard")).
		WithMetrics(a.metrics)

	if cfg.Status.Enabled() {
		a.server = server.New(server.Config{
			Addr:        cfg.Status.Addr,
			Development: cfg.Logging.Development,
			RateLimit: middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				Burst:             cfg.RateLimit.Burst,
			},
			CORS: middleware.DefaultCORSConfig(),
		}, server.Deps{
			State:   a.state,
			RunID:   a.runID,
			Metrics: a.metrics,
			Tracer:  a.tracer,
			Hub:     a.hub,
			Logger:  logger.Component("server"),
		})
	}

	a.coordinator = NewCoordinator(a.state, logger.Component("coordinator"))
	a.coordinator.CloseOnShutdown(input)

	return a, nil
}

// State returns the shared signal state
func (a *App) State() *crossing.State {
	return a.state
}

// RunID returns the identifier of this run
func (a *App) RunID() id.RunID {
	return a.runID
}

// Metrics returns the metrics collector
func (a *App) Metrics() *monitoring.Metrics {
	return a.metrics
}

// Cycles returns how many crossing cycles have started
func (a *App) Cycles() int {
	return a.cycles.Cycles()
}

// Run drives the signal until shutdown is requested, by a quit key, end of
// input or ctx, and returns once every worker has been joined.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting crosswalk", zap.Bool("status_server", a.server != nil))
	defer a.tracer.Close()

	workers := []Worker{
		{Name: "controller", Run: a.controller.Run},
		{Name: "random", Run: a.random.Run},
		{Name: "keyboard", Run: a.manual.Run},
	}
	if a.server != nil {
		workers = append(workers, Worker{Name: "server", Run: a.server.Run})
	}

	err := a.coordinator.Run(ctx, workers...)

	a.logger.Info("Crosswalk stopped",
		zap.Int("crossings", a.cycles.Cycles()),
		zap.Duration("uptime", a.metrics.UptimeDuration()),
	)
	return err
}
