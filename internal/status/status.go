// Package status summarises the state of the system drive before and
// after a clean.
package status

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/kio/ccleanplus/internal/clean"
	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
	diskinfo "github.com/kio/ccleanplus/internal/disk"
	"github.com/kio/ccleanplus/internal/log"
)

// DriveInfo is the usage of one volume.
type DriveInfo struct {
	Path        string  `json:"path"`
	FSType      string  `json:"fstype"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
	// MediaType is SSD, HDD or Unknown.
	MediaType   diskinfo.Type `json:"media_type"`
	ScanThreads int           `json:"scan_threads"`
}

// HostInfo describes the machine.
type HostInfo struct {
	Hostname  string        `json:"hostname"`
	OS        string        `json:"os"`
	Version   string        `json:"version"`
	Arch      string        `json:"arch"`
	Uptime    time.Duration `json:"uptime"`
	RAMTotal  uint64        `json:"ram_total"`
	RAMUsedPc float64       `json:"ram_used_percent"`
}

// Summary is everything "ccp status" shows.
type Summary struct {
	Host       HostInfo              `json:"host"`
	Drive      DriveInfo             `json:"drive"`
	Admin      bool                  `json:"admin"`
	RecycleBin *clean.RecycleBinInfo `json:"recycle_bin,omitempty"`
	// Warnings lists probes that failed; the rest of the summary is still valid.
	Warnings []string `json:"warnings,omitempty"`
}

// Collect gathers the summary for the system drive. Individual probe
// failures are recorded as warnings; only a failed disk usage query is fatal.
func Collect(ctx context.Context) (*Summary, error) {
	l := log.WithComponent("status")
	s := &Summary{Admin: core.IsAdmin()}

	root := config.SystemRoot()
	usage, err := disk.UsageWithContext(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("disk usage %s: %w", root, err)
	}
	s.Drive = DriveInfo{
		Path:        usage.Path,
		FSType:      usage.Fstype,
		Total:       usage.Total,
		Used:        usage.Used,
		Free:        usage.Free,
		UsedPercent: usage.UsedPercent,
	}
	s.Drive.MediaType, s.Drive.ScanThreads = diskinfo.Detect(ctx, config.SystemDriveLetter())

	if hi, err := host.InfoWithContext(ctx); err == nil {
		s.Host = HostInfo{
			Hostname: hi.Hostname,
			OS:       hi.Platform,
			Version:  hi.PlatformVersion,
			Arch:     hi.KernelArch,
			Uptime:   time.Duration(hi.Uptime) * time.Second,
		}
	} else {
		l.Debug().Err(err).Msg("host info unavailable")
		s.Warnings = append(s.Warnings, "host info: "+err.Error())
	}
	if runtime.GOOS == "windows" {
		s.Host.Version = core.WindowsVersionString()
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.Host.RAMTotal = vm.Total
		s.Host.RAMUsedPc = vm.UsedPercent
	} else {
		s.Warnings = append(s.Warnings, "memory: "+err.Error())
	}

	if rb, err := clean.QueryRecycleBin(); err == nil {
		s.RecycleBin = &rb
	} else {
		l.Debug().Err(err).Msg("recycle bin query failed")
	}
	return s, nil
}
