// Package crossing holds the shared state of a pedestrian-crossing signal.
//
// A single State value owns every flag the program's goroutines share:
//   - Running: cleared exactly once when shutdown is requested
//   - Pending: a pedestrian has pushed the button and the request is not yet accepted
//   - Crossing: a crossing cycle is in progress; new requests are dropped
//   - Vehicle phase: the phase most recently published by the controller
//
// All access goes through State methods, each a single critical section.
// Every mutation broadcasts a wake event so that blocked waiters re-check
// their predicate.
//
// Timer builds the interruptible sleep on top of the wake event: it waits in
// bounded slices and returns early on shutdown or, when asked, on a pending
// request.
//
// Example Usage:
//
//	state := crossing.NewState()
//	timer := crossing.NewTimer(state, 100*time.Millisecond)
//
//	go func() {
//		if timer.Sleep(5*time.Second, false) {
//			state.SetRequest()
//		}
//	}()
//
//	state.WaitForEvent(func(s crossing.Snapshot) bool {
//		return s.Pending || !s.Running
//	})
package crossing
