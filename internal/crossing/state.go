package crossing

import (
	"sync"
	"time"
)

// RequestResult reports what a SetRequest call did
type RequestResult int

const (
	// RequestRaised means the pending flag went from false to true
	RequestRaised RequestResult = iota
	// RequestDuplicate means a request was already pending
	RequestDuplicate
	// RequestDropped means a crossing is active and the request was discarded
	RequestDropped
	// RequestIgnored means shutdown has been requested
	RequestIgnored
)

// String returns the string representation of the result
func (r RequestResult) String() string {
	switch r {
	case RequestRaised:
		return "raised"
	case RequestDuplicate:
		return "duplicate"
	case RequestDropped:
		return "dropped"
	case RequestIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the shared flags taken under the lock.
type Snapshot struct {
	Running      bool
	Pending      bool
	Crossing     bool
	Vehicle      VehiclePhase
	PendingSince time.Time
}

// Pedestrian returns the pedestrian phase matching the vehicle phase
func (s Snapshot) Pedestrian() PedestrianPhase {
	return s.Vehicle.Pedestrian()
}

// State is the shared signal state. The zero value is not usable; call NewState.
type State struct {
	mu   sync.Mutex
	wake chan struct{} // closed and replaced on every broadcast

	running      bool
	pending      bool
	crossing     bool
	vehicle      VehiclePhase
	pendingSince time.Time

	now func() time.Time
}

// NewState creates a running state with vehicles on GREEN.
func NewState() *State {
	return &State{
		wake:    make(chan struct{}),
		running: true,
		vehicle: Green,
		now:     time.Now,
	}
}

// broadcast wakes every waiter. Callers hold s.mu.
func (s *State) broadcast() {
	close(s.wake)
	s.wake = make(chan struct{})
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Running:      s.running,
		Pending:      s.pending,
		Crossing:     s.crossing,
		Vehicle:      s.vehicle,
		PendingSince: s.pendingSince,
	}
}

// SetRequest raises the pending-request flag. It is a no-op while a crossing
// is active, after shutdown, or when a request is already pending.
func (s *State) SetRequest() RequestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.broadcast()

	switch {
	case !s.running:
		return RequestIgnored
	case s.crossing:
		return RequestDropped
	case s.pending:
		return RequestDuplicate
	}

	s.pending = true
	s.pendingSince = s.now()
	return RequestRaised
}

// ClearRequest discards any pending request
func (s *State) ClearRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	s.pendingSince = time.Time{}
	s.broadcast()
}

// TryConsumeRequest accepts the pending request if vehicles are on GREEN and
// no crossing is active. Acceptance clears the pending flag and begins the
// crossing in the same critical section. It returns how long the request
// waited before acceptance.
func (s *State) TryConsumeRequest() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || !s.pending || s.crossing || s.vehicle != Green {
		return 0, false
	}

	waited := s.now().Sub(s.pendingSince)
	s.pending = false
	s.pendingSince = time.Time{}
	s.crossing = true
	s.broadcast()
	return waited, true
}

// BeginCrossing marks a crossing cycle as active. Any pending request is
// discarded since none may be outstanding during a crossing.
func (s *State) BeginCrossing() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.crossing = true
	s.pending = false
	s.pendingSince = time.Time{}
	s.broadcast()
}

// EndCrossing marks the crossing cycle as complete
func (s *State) EndCrossing() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.crossing = false
	s.broadcast()
}

// SetPhase publishes the vehicle phase the controller has entered
func (s *State) SetPhase(p VehiclePhase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vehicle = p
	s.broadcast()
}

// RequestShutdown clears the run flag. It returns true only for the call
// that performed the transition; the flag never becomes true again.
func (s *State) RequestShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}
	s.running = false
	s.broadcast()
	return true
}

// IsRunning reports whether shutdown has not been requested yet
func (s *State) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsCrossing reports whether a crossing cycle is active
func (s *State) IsCrossing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crossing
}

// Snapshot returns a consistent copy of the shared state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// WaitForEvent blocks until pred holds. The predicate is evaluated under the
// lock on entry and again after every wake, so spurious and lost wakeups are
// both harmless.
func (s *State) WaitForEvent(pred func(Snapshot) bool) Snapshot {
	snap, _ := s.WaitForEventTimeout(pred, 0)
	return snap
}

// WaitForEventTimeout is WaitForEvent bounded by timeout. A non-positive
// timeout waits forever. The boolean reports whether pred held on return.
func (s *State) WaitForEventTimeout(pred func(Snapshot) bool, timeout time.Duration) (Snapshot, bool) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	s.mu.Lock()
	for {
		snap := s.snapshotLocked()
		if pred(snap) {
			s.mu.Unlock()
			return snap, true
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-wake:
		case <-expired:
			s.mu.Lock()
			snap = s.snapshotLocked()
			s.mu.Unlock()
			return snap, pred(snap)
		}

		s.mu.Lock()
	}
}
