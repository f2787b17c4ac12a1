//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

type savedMode = unix.Termios

func currentMode(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlGetTermios)
}

func enableCbreak(fd int) (*savedMode, error) {
	saved, err := currentMode(fd)
	if err != nil {
		return nil, err
	}

	mode := *saved
	mode.Lflag &^= unix.ICANON | unix.ECHO
	mode.Cc[unix.VMIN] = 1
	mode.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &mode); err != nil {
		return nil, err
	}
	return saved, nil
}

func restoreMode(fd int, saved *savedMode) error {
	if saved == nil {
		return nil
	}
	return unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
}
