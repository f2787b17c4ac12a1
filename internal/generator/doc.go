// Package generator produces pedestrian requests.
//
// Random pushes the button after delays drawn uniformly from a Range.
// Manual pushes it on every keystroke read from a CharReader and turns q, Q
// and Ctrl-D into a shutdown request. Both only ever call SetRequest on the
// shared state, so a push during a crossing is dropped and a second push
// before acceptance changes nothing.
package generator
