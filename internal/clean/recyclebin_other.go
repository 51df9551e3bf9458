//go:build !windows

package clean

import "errors"

var errNoRecycleBin = errors.New("the Recycle Bin is only available on Windows")

func QueryRecycleBin() (RecycleBinInfo, error) {
	return RecycleBinInfo{}, errNoRecycleBin
}

func EmptyRecycleBin(dryRun bool) error {
	if dryRun {
		return nil
	}
	return errNoRecycleBin
}
