// Package controller runs the signal state machine.
//
// The vehicle cycle is fixed: GREEN, YELLOW_TO_RED, RED, YELLOW_TO_GREEN and
// back to GREEN. A pending request is accepted only on GREEN with no crossing
// in progress; acceptance ends GREEN at once and makes the following RED last
// the crossing time. Requests raised in other phases stay pending and are
// considered when GREEN returns.
package controller
