package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var gradient = []lipgloss.AdaptiveColor{
	{Light: "#16a34a", Dark: "#4ade80"},
	{Light: "#65a30d", Dark: "#a3e635"},
	{Light: "#ca8a04", Dark: "#facc15"},
	{Light: "#ea580c", Dark: "#fb923c"},
	{Light: "#dc2626", Dark: "#f87171"},
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func filledCells(pct float64, width int) int {
	if width <= 0 {
		return 0
	}
	n := int(clampPct(pct) / 100 * float64(width))
	if n > width {
		n = width
	}
	return n
}

// GradientBar renders a bar whose filled cells shade from green to red
// along its length.
func GradientBar(pct float64, width int) string {
	filled := filledCells(pct, width)
	var b strings.Builder
	for i := 0; i < filled; i++ {
		c := gradient[i*len(gradient)/width]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", width-filled)))
	return b.String()
}

// SeverityBar renders a ████░░░░ bar colored by how full it is.
func SeverityBar(pct float64, width int) string {
	filled := filledCells(pct, width)
	pct = clampPct(pct)

	barColor := gradient[0]
	switch {
	case pct >= 90:
		barColor = gradient[4]
	case pct >= 75:
		barColor = gradient[3]
	case pct >= 50:
		barColor = gradient[2]
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}
