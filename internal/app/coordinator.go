package app

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
)

// Worker is one long-running activity joined by the Coordinator
type Worker struct {
	Name string
	Run  func(ctx context.Context) error
}

// Coordinator propagates the run flag to every worker and joins them.
//
// Workers run under one errgroup. Once the run flag clears, for whatever
// reason, the workers' context is cancelled and every registered closer is
// closed, which unblocks a reader parked in a blocking read. A worker that
// fails or a cancelled parent context clears the run flag for everyone.
type Coordinator struct {
	state  *crossing.State
	logger *zap.Logger

	mu      sync.Mutex
	closers []io.Closer
}

// NewCoordinator creates a coordinator for the given state
func NewCoordinator(state *crossing.State, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{state: state, logger: logger}
}

// CloseOnShutdown registers a resource to close once the run flag clears
func (c *Coordinator) CloseOnShutdown(closer io.Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, closer)
}

// Run starts the workers and blocks until all of them have returned. It
// returns the first worker error.
func (c *Coordinator) Run(ctx context.Context, workers ...Worker) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	stopOnCancel := context.AfterFunc(gctx, func() { c.state.RequestShutdown() })
	defer stopOnCancel()

	watched := make(chan struct{})
	go func() {
		defer close(watched)
		c.state.WaitForEvent(func(s crossing.Snapshot) bool { return !s.Running })
		c.logger.Info("shutdown requested, stopping workers")
		cancel()
		c.closeAll()
	}()

	for _, w := range workers {
		g.Go(func() error {
			err := w.Run(gctx)
			if err != nil {
				c.logger.Error("worker failed", zap.String("worker", w.Name), zap.Error(err))
			} else {
				c.logger.Debug("worker joined", zap.String("worker", w.Name))
			}
			return err
		})
	}

	err := g.Wait()

	// Every worker has returned; release the watcher if nobody cleared the flag
	c.state.RequestShutdown()
	<-watched
	return err
}

func (c *Coordinator) closeAll() {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			c.logger.Warn("failed to close resource on shutdown", zap.Error(err))
		}
	}
}
