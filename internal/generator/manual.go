package generator

import (
	"context"
	"errors"
	"io"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// CharReader is a blocking single-character input source
type CharReader interface {
	ReadChar() (byte, error)
}

// keyEOT is Ctrl-D, which arrives as a byte while canonical mode is off
const keyEOT = 0x04

// IsQuitKey reports whether key requests shutdown
func IsQuitKey(key byte) bool {
	return key == 'q' || key == 'Q' || key == keyEOT
}

// Manual pushes the button on every keystroke.
type Manual struct {
	state   *crossing.State
	input   CharReader
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewManual creates a keyboard generator reading from input
func NewManual(state *crossing.State, input CharReader, logger *zap.Logger) *Manual {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manual{state: state, input: input, logger: logger}
}

// WithMetrics attaches a metrics collector
func (g *Manual) WithMetrics(m *monitoring.Metrics) *Manual {
	g.metrics = m
	return g
}

// Run reads keys until a quit key, end of input or shutdown. A quit key or a
// failed read requests shutdown. A read blocked at shutdown only returns once
// the input is closed.
func (g *Manual) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { g.state.RequestShutdown() })
	defer stop()

	g.logger.Info("keyboard generator started")
	defer g.logger.Info("keyboard generator stopped")

	for {
		key, err := g.input.ReadChar()
		if !g.state.IsRunning() {
			return nil
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				g.logger.Info("input closed")
			} else {
				g.logger.Warn("input read failed", zap.Error(err))
			}
			g.state.RequestShutdown()
			return nil
		}

		if IsQuitKey(key) {
			g.logger.Info("quit key pressed")
			g.state.RequestShutdown()
			return nil
		}

		result := g.state.SetRequest()
		g.logger.Debug("button pushed",
			zap.String("source", SourceKeyboard),
			zap.Stringer("result", result),
		)
		g.metrics.RecordRequest(SourceKeyboard, result.String())
	}
}
