//go:build windows

package bigfile

import "golang.org/x/sys/windows"

// isReparsePoint reports junctions and directory symlinks, which must never
// be followed (they can loop back to an ancestor).
func isReparsePoint(path string) bool {
	p, err := windows.UTF16PtrFromString(longPath(path))
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
