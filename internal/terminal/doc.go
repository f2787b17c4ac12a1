// Package terminal provides single-keystroke input from a terminal device.
//
// Open puts the device into cbreak mode: keys arrive one at a time without
// echo, while Ctrl-C still raises SIGINT and output keeps its newline
// translation so log lines and the display render normally. Close restores
// the previous mode and unblocks a pending ReadChar.
package terminal
