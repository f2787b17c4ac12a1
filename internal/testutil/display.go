// Package testutil provides fakes shared by the crosswalk package tests.
package testutil

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/stretchr/testify/mock"
)

// Render is one recorded display call
type Render struct {
	Vehicle    crossing.VehiclePhase
	Pedestrian crossing.PedestrianPhase
	Crossing   bool
	At         time.Time
}

// RecordingDisplay stores every render it receives.
type RecordingDisplay struct {
	mu      sync.Mutex
	renders []Render
}

// NewRecordingDisplay creates an empty recording display
func NewRecordingDisplay() *RecordingDisplay {
	return &RecordingDisplay{}
}

// Render records the call
func (d *RecordingDisplay) Render(v crossing.VehiclePhase, p crossing.PedestrianPhase, crossingActive bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders = append(d.renders, Render{Vehicle: v, Pedestrian: p, Crossing: crossingActive, At: time.Now()})
}

// Renders returns a copy of everything recorded so far
func (d *RecordingDisplay) Renders() []Render {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Render, len(d.renders))
	copy(out, d.renders)
	return out
}

// Len returns the number of recorded renders
func (d *RecordingDisplay) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.renders)
}

// Vehicles returns the recorded vehicle phases in order
func (d *RecordingDisplay) Vehicles() []crossing.VehiclePhase {
	renders := d.Renders()
	out := make([]crossing.VehiclePhase, len(renders))
	for i, r := range renders {
		out[i] = r.Vehicle
	}
	return out
}

// WaitFor polls until at least n renders were recorded or timeout expires
func (d *RecordingDisplay) WaitFor(n int, timeout time.Duration) ([]Render, bool) {
	deadline := time.Now().Add(timeout)
	for {
		renders := d.Renders()
		if len(renders) >= n {
			return renders, true
		}
		if time.Now().After(deadline) {
			return renders, false
		}
		time.Sleep(time.Millisecond)
	}
}

// MockDisplay is a testify mock of the display sink
type MockDisplay struct {
	mock.Mock
}

// Render records the call on the mock
func (m *MockDisplay) Render(v crossing.VehiclePhase, p crossing.PedestrianPhase, crossingActive bool) {
	m.Called(v, p, crossingActive)
}
