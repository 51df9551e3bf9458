//go:build !windows

package clean

import (
	"context"
	"errors"
)

// CreateRestorePoint is only available on Windows.
func CreateRestorePoint(ctx context.Context) error {
	return errors.New("system restore is only available on Windows")
}
