//go:build !windows

package disk

import (
	"context"
	"errors"
)

func detect(ctx context.Context, letter string) (Type, error) {
	return Unknown, errors.New("disk type detection is only supported on Windows")
}
