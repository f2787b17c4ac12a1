//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package terminal

type savedMode struct{}

func enableCbreak(int) (*savedMode, error) {
	return nil, ErrUnsupported
}

func restoreMode(int, *savedMode) error {
	return nil
}
