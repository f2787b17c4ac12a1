package crossing

import "time"

// DefaultSlice is the default upper bound between two re-checks of the
// shared state during an interruptible sleep.
const DefaultSlice = 100 * time.Millisecond

// Timer is a delay that can be cut short by shutdown or by a pending request.
type Timer struct {
	state *State
	slice time.Duration
}

// NewTimer creates a timer bound to state. A non-positive slice selects DefaultSlice.
func NewTimer(state *State, slice time.Duration) *Timer {
	if slice <= 0 {
		slice = DefaultSlice
	}
	return &Timer{state: state, slice: slice}
}

// Slice returns the polling slice
func (t *Timer) Slice() time.Duration {
	return t.slice
}

// Sleep waits for d. It returns true if the full duration elapsed and false
// if it returned early because shutdown was requested or, when
// interruptOnRequest is set, because an acceptable request became pending.
//
// The wait is woken immediately by any state broadcast; the slice only bounds
// how long the state can go unobserved.
func (t *Timer) Sleep(d time.Duration, interruptOnRequest bool) bool {
	interrupted := func(s Snapshot) bool {
		if !s.Running {
			return true
		}
		return interruptOnRequest && s.Pending && !s.Crossing
	}

	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return !interrupted(t.state.Snapshot())
		}

		step := min(remaining, t.slice)
		if _, tripped := t.state.WaitForEventTimeout(interrupted, step); tripped {
			return false
		}
	}
}
