package monitoring

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultWaitWindow is how many recent request waits are kept for summaries
const DefaultWaitWindow = 256

// WaitSummary describes the distribution of recent request waits in seconds.
type WaitSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_seconds"`
	StdDev float64 `json:"stddev_seconds"`
	P50    float64 `json:"p50_seconds"`
	P95    float64 `json:"p95_seconds"`
	Max    float64 `json:"max_seconds"`
}

// WaitStats keeps a sliding window of request waits.
type WaitStats struct {
	mu      sync.Mutex
	samples []float64
	next    int
	full    bool
}

// NewWaitStats creates a window holding up to size samples
func NewWaitStats(size int) *WaitStats {
	if size <= 0 {
		size = DefaultWaitWindow
	}
	return &WaitStats{samples: make([]float64, size)}
}

// Add records one wait, evicting the oldest when the window is full
func (w *WaitStats) Add(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples[w.next] = d.Seconds()
	w.next = (w.next + 1) % len(w.samples)
	if w.next == 0 {
		w.full = true
	}
}

// Summary computes statistics over the current window
func (w *WaitStats) Summary() WaitSummary {
	w.mu.Lock()
	n := w.next
	if w.full {
		n = len(w.samples)
	}
	data := make([]float64, n)
	copy(data, w.samples[:n])
	w.mu.Unlock()

	if n == 0 {
		return WaitSummary{}
	}

	sort.Float64s(data)
	summary := WaitSummary{
		Count: n,
		Mean:  stat.Mean(data, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, data, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, data, nil),
		Max:   data[n-1],
	}
	if n > 1 {
		summary.StdDev = stat.StdDev(data, nil)
	}
	return summary
}
