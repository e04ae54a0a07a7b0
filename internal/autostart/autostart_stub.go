//go:build !windows

package autostart

import (
	"errors"
)

var errUnsupported = errors.New("autostart is not supported on this platform")

func supported() bool {
	return false
}

func isEnabled() bool {
	return false
}

func setEnabled(enable bool) error {
	return errUnsupported
}

func syncPath() error {
	return nil
}
