//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func openPTY(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo-terminal unavailable: %v", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return ptmx, tty
}

func modeOf(t *testing.T, f *os.File) *unix.Termios {
	t.Helper()
	fd, err := fileDescriptor(f)
	require.NoError(t, err)
	mode, err := currentMode(fd)
	require.NoError(t, err)
	return mode
}

func TestReadCharWithoutNewline(t *testing.T) {
	ptmx, tty := openPTY(t)

	in, err := NewInput(tty)
	require.NoError(t, err)
	defer in.Close()

	// No Enter needed once canonical mode is off
	_, err = ptmx.Write([]byte("ab"))
	require.NoError(t, err)

	key, err := in.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), key)

	key, err = in.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), key)
}

func TestCbreakModeKeepsSignals(t *testing.T) {
	_, tty := openPTY(t)

	in, err := NewInput(tty)
	require.NoError(t, err)
	defer in.Close()

	mode := modeOf(t, tty)
	assert.Zero(t, mode.Lflag&unix.ICANON, "canonical mode still on")
	assert.Zero(t, mode.Lflag&unix.ECHO, "echo still on")
	assert.NotZero(t, mode.Lflag&unix.ISIG, "signal keys disabled")
	assert.NotZero(t, mode.Oflag&unix.OPOST, "output processing disabled")
	assert.Equal(t, uint8(1), mode.Cc[unix.VMIN])
}

func TestCloseRestoresMode(t *testing.T) {
	_, tty := openPTY(t)

	// A second handle on the same device survives Input.Close
	observer, err := os.OpenFile(tty.Name(), os.O_RDWR, 0)
	require.NoError(t, err)
	defer observer.Close()

	before := modeOf(t, observer)

	in, err := NewInput(tty)
	require.NoError(t, err)
	require.NotEqual(t, before.Lflag, modeOf(t, observer).Lflag)

	require.NoError(t, in.Close())
	assert.Equal(t, before.Lflag, modeOf(t, observer).Lflag)

	// Close is idempotent and later reads report end of input
	assert.NoError(t, in.Close())
	_, err = in.ReadChar()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenByPath(t *testing.T) {
	_, tty := openPTY(t)

	in, err := Open(tty.Name())
	require.NoError(t, err)
	assert.NoError(t, in.Close())
}

func TestNotATerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys")
	require.NoError(t, os.WriteFile(path, []byte("q"), 0o600))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotTerminal)
}
