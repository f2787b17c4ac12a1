// Package display renders signal phases.
//
// Console prints a timestamped line per phase entry, optionally colored with
// ANSI escapes. Fanout lets the controller feed several sinks at once, such
// as the console, the websocket hub and the crossing tracer.
package display
