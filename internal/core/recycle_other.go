//go:build !windows

package core

import "errors"

// MoveToRecycleBin is unavailable off Windows; callers fall back to
// permanent deletion.
func MoveToRecycleBin(path string) error {
	return errors.New("recycle bin is only available on Windows")
}
