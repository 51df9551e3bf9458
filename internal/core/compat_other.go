//go:build !windows

package core

import "runtime"

// WindowsVersionString reports the host OS when not running on Windows.
func WindowsVersionString() string {
	return "not Windows (" + runtime.GOOS + ")"
}
