//go:build windows

package clean

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	hrUnexpected = 0x8000FFFF
)

// shQueryRBInfo mirrors SHQUERYRBINFO. Natural alignment pads cbSize to
// eight bytes on both 32-bit and 64-bit, matching the C layout.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

// QueryRecycleBin returns the total size and item count of the Recycle Bin
// across all drives.
func QueryRecycleBin() (RecycleBinInfo, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procQueryRecycleBin.Call(0, uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return RecycleBinInfo{}, fmt.Errorf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return RecycleBinInfo{Size: info.i64Size, Items: info.i64NumItems}, nil
}

// EmptyRecycleBin empties the Recycle Bin on all drives without prompting.
// In dryRun mode nothing is changed.
func EmptyRecycleBin(dryRun bool) error {
	if dryRun {
		return nil
	}

	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	// E_UNEXPECTED means the bin was already empty.
	if hr := uint32(ret); hr != 0 && hr != hrUnexpected {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}
