package disk

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanThreads(t *testing.T) {
	assert.Equal(t, 8, ScanThreads(SSD))
	assert.Equal(t, 2, ScanThreads(HDD))
	assert.Equal(t, 4, ScanThreads(Unknown))
	assert.Equal(t, 4, ScanThreads(Type("NVMe?")))
}

func TestParseMediaType(t *testing.T) {
	tests := map[string]Type{
		"SSD":         SSD,
		"Solid State": SSD,
		"HDD":         HDD,
		"Unspecified": HDD,
		"SCM":         Unknown,
		"":            Unknown,
		"Unknown":     Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseMediaType(in), in)
	}
}

func TestMediaTypeFromCode(t *testing.T) {
	assert.Equal(t, SSD, mediaTypeFromCode(4))
	assert.Equal(t, HDD, mediaTypeFromCode(3))
	assert.Equal(t, HDD, mediaTypeFromCode(0))
	assert.Equal(t, Unknown, mediaTypeFromCode(5))
}

func TestDetectOffWindowsIsUnknown(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("probes real hardware on Windows")
	}
	typ, threads := Detect(context.Background(), `C:\`)
	assert.Equal(t, Unknown, typ)
	assert.Equal(t, 4, threads)
}
