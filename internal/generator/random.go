package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Request sources, used as log fields and metric labels
const (
	SourceRandom   = "random"
	SourceKeyboard = "keyboard"
	SourceRemote   = "remote"
)

// Range is an inclusive delay range drawn in whole steps.
type Range struct {
	Min  time.Duration
	Max  time.Duration
	Step time.Duration
}

// DefaultRange draws whole seconds between 20 and 30
func DefaultRange() Range {
	return Range{Min: 20 * time.Second, Max: 30 * time.Second, Step: time.Second}
}

// Validate checks the range is drawable
func (r Range) Validate() error {
	if r.Min < 0 || r.Step <= 0 || r.Max < r.Min {
		return fmt.Errorf("invalid request range [%s, %s] step %s", r.Min, r.Max, r.Step)
	}
	return nil
}

// Draw picks a uniformly distributed delay from the range
func (r Range) Draw(rng *rand.Rand) time.Duration {
	steps := int64((r.Max - r.Min) / r.Step)
	return r.Min + time.Duration(rng.Int64N(steps+1))*r.Step
}

// Random pushes the button after random delays.
type Random struct {
	state   *crossing.State
	timer   *crossing.Timer
	delays  Range
	rng     *rand.Rand
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewRandom creates a random generator seeded independently for this process.
func NewRandom(state *crossing.State, delays Range, slice time.Duration, logger *zap.Logger) *Random {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Random{
		state:  state,
		timer:  crossing.NewTimer(state, slice),
		delays: delays,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: logger,
	}
}

// WithRand replaces the random source
func (g *Random) WithRand(rng *rand.Rand) *Random {
	g.rng = rng
	return g
}

// WithMetrics attaches a metrics collector
func (g *Random) WithMetrics(m *monitoring.Metrics) *Random {
	g.metrics = m
	return g
}

// Run pushes the button until shutdown is requested or ctx is cancelled.
func (g *Random) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { g.state.RequestShutdown() })
	defer stop()

	g.logger.Info("random generator started",
		zap.Duration("min", g.delays.Min),
		zap.Duration("max", g.delays.Max),
	)
	defer g.logger.Info("random generator stopped")

	for g.state.IsRunning() {
		delay := g.delays.Draw(g.rng)
		if !g.timer.Sleep(delay, false) {
			continue
		}

		result := g.state.SetRequest()
		g.logger.Debug("button pushed",
			zap.String("source", SourceRandom),
			zap.Stringer("result", result),
			zap.Duration("after", delay),
		)
		g.metrics.RecordRequest(SourceRandom, result.String())
	}

	return nil
}
