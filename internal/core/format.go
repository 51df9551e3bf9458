package core

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

var unitFactor = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// FormatSize renders a byte count with two decimals in base-1024 units,
// e.g. 1536 -> "1.50 KB". TB is the largest unit.
func FormatSize(n int64) string {
	s := float64(n)
	for i, u := range sizeUnits {
		if s < 1024 || i == len(sizeUnits)-1 {
			return fmt.Sprintf("%.2f %s", s, u)
		}
		s /= 1024
	}
	return fmt.Sprintf("%d B", n)
}

// ParseSize is the inverse of FormatSize. It accepts "1.50 KB", "100MB",
// "512" (bytes) and is case-insensitive about the unit.
func ParseSize(text string) (int64, error) {
	t := strings.ToUpper(strings.TrimSpace(text))
	if t == "" {
		return 0, fmt.Errorf("empty size")
	}

	i := len(t)
	for i > 0 && (t[i-1] < '0' || t[i-1] > '9') && t[i-1] != '.' {
		i--
	}
	num := strings.TrimSpace(t[:i])
	unit := strings.TrimSpace(t[i:])
	if unit == "" {
		unit = "B"
	}

	factor, ok := unitFactor[unit]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q in %q", unit, text)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", text, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative size %q", text)
	}
	return int64(v * float64(factor)), nil
}
