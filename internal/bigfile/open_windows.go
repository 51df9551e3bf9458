//go:build windows

package bigfile

import "os/exec"

// openInExplorer opens the containing folder with the file selected.
func openInExplorer(path string) error {
	return exec.Command("explorer", "/select,", path).Start()
}
