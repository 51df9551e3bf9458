//go:build !windows

package core

import (
	"errors"
	"os"
)

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// RelaunchAsAdmin is only supported on Windows.
func RelaunchAsAdmin(args []string) error {
	return errors.New("elevation is only supported on Windows")
}
