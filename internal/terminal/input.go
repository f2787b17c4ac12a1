package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when the input device is not a terminal
	ErrNotTerminal = errors.New("terminal: not a terminal")
	// ErrUnsupported is returned on platforms without termios
	ErrUnsupported = errors.New("terminal: single-key input not supported on this platform")
)

// Input reads single keystrokes from a terminal in cbreak mode.
type Input struct {
	file  *os.File
	fd    int
	saved *savedMode

	once     sync.Once
	closeErr error
}

// Open opens the terminal device at path and switches it to cbreak mode
func Open(path string) (*Input, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open input device: %w", err)
	}

	in, err := NewInput(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return in, nil
}

// NewInput takes ownership of f and switches it to cbreak mode. Echo and line
// buffering are turned off; signal keys and output processing are left alone.
func NewInput(f *os.File) (*Input, error) {
	fd, err := fileDescriptor(f)
	if err != nil {
		return nil, err
	}

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
	}

	saved, err := enableCbreak(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	return &Input{file: f, fd: fd, saved: saved}, nil
}

// ReadChar blocks until a key is pressed. After Close it returns io.EOF.
func (in *Input) ReadChar() (byte, error) {
	var buf [1]byte
	for {
		n, err := in.file.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			if errors.Is(err, os.ErrClosed) || errors.Is(err, os.ErrDeadlineExceeded) {
				return 0, io.EOF
			}
			return 0, err
		}
	}
}

// Close restores the saved terminal mode and releases the device. A read
// blocked in ReadChar returns. Close is safe to call more than once.
func (in *Input) Close() error {
	in.once.Do(func() {
		// Wake a pending read before the descriptor goes away
		_ = in.file.SetReadDeadline(time.Now())

		in.closeErr = errors.Join(
			restoreMode(in.fd, in.saved),
			in.file.Close(),
		)
	})
	return in.closeErr
}

// fileDescriptor returns the descriptor without forcing f into blocking mode
func fileDescriptor(f *os.File) (int, error) {
	raw, err := f.SyscallConn()
	if err != nil {
		return -1, fmt.Errorf("%s: %w", f.Name(), err)
	}

	fd := -1
	if err := raw.Control(func(u uintptr) { fd = int(u) }); err != nil {
		return -1, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return fd, nil
}
