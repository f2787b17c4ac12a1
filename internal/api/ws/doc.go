// Package ws serves the live phase stream of the status server.
//
// The Hub is registered as a display sink, so every phase entry is pushed to
// connected subscribers as {"type":"phase",...}. A subscriber may send
// {"type":"ping"} and gets {"type":"pong"} back. Render never blocks the
// signal: a subscriber that cannot keep up is disconnected.
package ws
