// Package disk detects the media type of the drive being scanned and picks
// a matching scan concurrency.
package disk

import (
	"context"
	"strings"
	"time"

	"github.com/kio/ccleanplus/internal/log"
)

// Type is the physical media behind a drive letter.
type Type string

const (
	SSD     Type = "SSD"
	HDD     Type = "HDD"
	Unknown Type = "Unknown"
)

// detectTimeout bounds each probe (WMI or PowerShell).
const detectTimeout = 10 * time.Second

var threadMap = map[Type]int{SSD: 8, HDD: 2, Unknown: 4}

// ScanThreads returns the number of scan workers suited to t. Solid state
// drives handle parallel reads well; spinning disks thrash.
func ScanThreads(t Type) int {
	if n, ok := threadMap[t]; ok {
		return n
	}
	return threadMap[Unknown]
}

// ParseMediaType maps the text PowerShell prints for MediaType.
// "Unspecified" is reported by many older SATA spinning disks.
func ParseMediaType(s string) Type {
	switch {
	case strings.Contains(s, "SSD"), strings.Contains(s, "Solid"):
		return SSD
	case strings.Contains(s, "HDD"), strings.Contains(s, "Unspecified"):
		return HDD
	default:
		return Unknown
	}
}

// mediaTypeFromCode maps MSFT_PhysicalDisk.MediaType.
func mediaTypeFromCode(code uint16) Type {
	switch code {
	case 4:
		return SSD
	case 3, 0:
		return HDD
	default:
		return Unknown
	}
}

// Detect returns the media type behind driveLetter ("C") and the scan
// thread count for it. Detection failures yield Unknown.
func Detect(ctx context.Context, driveLetter string) (Type, int) {
	letter := strings.ToUpper(strings.TrimRight(driveLetter, `:\/`))
	if letter == "" {
		letter = "C"
	}
	l := log.WithComponent("disk")

	t, err := detect(ctx, letter[:1])
	if err != nil {
		l.Debug().Err(err).Str("drive", letter).Msg("disk type detection failed")
		t = Unknown
	}
	l.Debug().Str("drive", letter).Str("type", string(t)).Msg("detected disk type")
	return t, ScanThreads(t)
}
