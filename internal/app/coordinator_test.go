package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/testutil"
)

// untilShutdown blocks until the run flag clears, polling one slice at a time
func untilShutdown(state *crossing.State) func(context.Context) error {
	return func(ctx context.Context) error {
		for state.IsRunning() {
			state.WaitForEventTimeout(func(s crossing.Snapshot) bool { return !s.Running }, 10*time.Millisecond)
		}
		return nil
	}
}

func runCoordinator(ctx context.Context, c *Coordinator, workers ...Worker) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, workers...) }()
	return done
}

func TestCoordinatorJoinsOnShutdown(t *testing.T) {
	state := crossing.NewState()
	c := NewCoordinator(state, nil)

	done := runCoordinator(context.Background(), c,
		Worker{Name: "a", Run: untilShutdown(state)},
		Worker{Name: "b", Run: untilShutdown(state)},
	)

	state.RequestShutdown()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers not joined")
	}
}

func TestCoordinatorClosesInputToUnblockReader(t *testing.T) {
	state := crossing.NewState()
	input := testutil.NewScriptedReader("")
	c := NewCoordinator(state, nil)
	c.CloseOnShutdown(input)

	var readErr atomic.Value
	done := runCoordinator(context.Background(), c, Worker{
		Name: "reader",
		Run: func(ctx context.Context) error {
			_, err := input.ReadChar()
			readErr.Store(err)
			return nil
		},
	})

	state.RequestShutdown()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("blocked reader not released")
	}
	assert.Error(t, readErr.Load().(error))
}

func TestCoordinatorParentCancel(t *testing.T) {
	state := crossing.NewState()
	c := NewCoordinator(state, nil)
	ctx, cancel := context.WithCancel(context.Background())

	var sawCancel atomic.Bool
	done := runCoordinator(ctx, c, Worker{
		Name: "ctx",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			sawCancel.Store(true)
			return nil
		},
	}, Worker{Name: "flag", Run: untilShutdown(state)})

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers not joined")
	}
	assert.True(t, sawCancel.Load())
	assert.False(t, state.IsRunning())
}

func TestCoordinatorWorkerFailureStopsEveryone(t *testing.T) {
	state := crossing.NewState()
	c := NewCoordinator(state, nil)
	boom := errors.New("listen failed")

	done := runCoordinator(context.Background(), c,
		Worker{Name: "bad", Run: func(context.Context) error { return boom }},
		Worker{Name: "good", Run: untilShutdown(state)},
	)

	select {
	case err := <-done:
		require.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("workers not joined")
	}
	assert.False(t, state.IsRunning())
}

func TestCoordinatorWorkersFinishingFirst(t *testing.T) {
	state := crossing.NewState()
	input := testutil.NewScriptedReader("")
	c := NewCoordinator(state, nil)
	c.CloseOnShutdown(input)

	err := c.Run(context.Background(), Worker{Name: "quick", Run: func(context.Context) error { return nil }})
	require.NoError(t, err)

	// The run flag is cleared and resources released even though no worker asked
	assert.False(t, state.IsRunning())
	_, readErr := input.ReadChar()
	assert.Error(t, readErr)
}
