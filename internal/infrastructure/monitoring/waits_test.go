package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitStatsEmpty(t *testing.T) {
	w := NewWaitStats(4)
	assert.Equal(t, WaitSummary{}, w.Summary())
}

func TestWaitStatsSummary(t *testing.T) {
	w := NewWaitStats(16)
	for _, s := range []int{1, 2, 3, 4, 5} {
		w.Add(time.Duration(s) * time.Second)
	}

	s := w.Summary()
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 3.0, s.P50, 1e-9)
	assert.InDelta(t, 5.0, s.P95, 1e-9)
	assert.InDelta(t, 5.0, s.Max, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestWaitStatsSingleSample(t *testing.T) {
	w := NewWaitStats(4)
	w.Add(2 * time.Second)

	s := w.Summary()
	assert.Equal(t, 1, s.Count)
	assert.Zero(t, s.StdDev)
}

func TestWaitStatsEvictsOldest(t *testing.T) {
	w := NewWaitStats(3)
	w.Add(100 * time.Second)
	w.Add(time.Second)
	w.Add(time.Second)
	w.Add(time.Second)

	s := w.Summary()
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 1.0, s.Max, 1e-9)
}

func TestNewWaitStatsDefaultSize(t *testing.T) {
	w := NewWaitStats(0)
	assert.Len(t, w.samples, DefaultWaitWindow)
}
