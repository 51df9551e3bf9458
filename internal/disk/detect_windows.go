//go:build windows

package disk

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/yusufpapurcu/wmi"
)

const storageNamespace = `root\Microsoft\Windows\Storage`

type msftPartition struct {
	DiskNumber  uint32
	DriveLetter uint16
}

type msftPhysicalDisk struct {
	DeviceId  string
	MediaType uint16
}

func detect(ctx context.Context, letter string) (Type, error) {
	t, err := detectWMI(letter)
	if err == nil {
		return t, nil
	}
	return detectPowerShell(ctx, letter)
}

// detectWMI resolves drive letter → partition → physical disk through the
// Storage Management API classes.
func detectWMI(letter string) (Type, error) {
	var parts []msftPartition
	if err := wmi.QueryNamespace("SELECT DiskNumber, DriveLetter FROM MSFT_Partition", &parts, storageNamespace); err != nil {
		return Unknown, fmt.Errorf("query partitions: %w", err)
	}
	want := uint16(letter[0])
	disk := -1
	for _, p := range parts {
		if p.DriveLetter == want {
			disk = int(p.DiskNumber)
			break
		}
	}
	if disk < 0 {
		return Unknown, fmt.Errorf("no partition for drive %s", letter)
	}

	var disks []msftPhysicalDisk
	if err := wmi.QueryNamespace("SELECT DeviceId, MediaType FROM MSFT_PhysicalDisk", &disks, storageNamespace); err != nil {
		return Unknown, fmt.Errorf("query physical disks: %w", err)
	}
	for _, d := range disks {
		if d.DeviceId == strconv.Itoa(disk) {
			return mediaTypeFromCode(d.MediaType), nil
		}
	}
	return Unknown, fmt.Errorf("no physical disk %d", disk)
}

func detectPowerShell(ctx context.Context, letter string) (Type, error) {
	script := fmt.Sprintf(`
$partition = Get-Partition -DriveLetter %s -ErrorAction SilentlyContinue
if ($partition) {
    $disk = Get-PhysicalDisk | Where-Object { $_.DeviceId -eq $partition.DiskNumber }
    if ($disk) { $disk.MediaType } else { "Unknown" }
} else { "Unknown" }
`, letter)

	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	out, err := cmd.Output()
	if err != nil {
		return Unknown, fmt.Errorf("powershell: %w", err)
	}
	return ParseMediaType(strings.TrimSpace(string(out))), nil
}
