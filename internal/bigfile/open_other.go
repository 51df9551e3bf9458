//go:build !windows

package bigfile

import (
	"os/exec"
	"path/filepath"
	"runtime"
)

func openInExplorer(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.Command(opener, filepath.Dir(path)).Start()
}
