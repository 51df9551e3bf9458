package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kio/ccleanplus/internal/ui"
)

// Render draws the summary as a pair of lipgloss cards.
func Render(s *Summary, width int) string {
	if width < 50 {
		width = 50
	}
	barW := 24
	if width > 100 {
		barW = 32
	}

	title := ui.TitleStyle().Render("  " + ui.IconDiamond + " System Drive")

	d := s.Drive
	driveLines := []string{
		fmt.Sprintf("  %-4s %s  %5.1f%%  %s / %s",
			d.Path, ui.SeverityBar(d.UsedPercent, barW), d.UsedPercent,
			ui.FormatSize(int64(d.Used)), ui.FormatSize(int64(d.Total))),
		fmt.Sprintf("  Free       %s", ui.FormatSize(int64(d.Free))),
		fmt.Sprintf("  Media      %s  (%d scan threads)", d.MediaType, d.ScanThreads),
	}
	if d.FSType != "" {
		driveLines = append(driveLines, fmt.Sprintf("  Filesystem %s", d.FSType))
	}
	if s.RecycleBin != nil {
		driveLines = append(driveLines, fmt.Sprintf("  Recycle    %s in %d items",
			ui.FormatSize(s.RecycleBin.Size), s.RecycleBin.Items))
	}
	driveCard := card(strings.Join(driveLines, "\n"))

	h := s.Host
	admin := ui.WarningStyle().Render("no (some targets need elevation)")
	if s.Admin {
		admin = ui.SuccessStyle().Render("yes")
	}
	hostLines := []string{
		fmt.Sprintf("  Computer   %s", h.Hostname),
		fmt.Sprintf("  OS         %s %s", h.OS, h.Version),
		fmt.Sprintf("  Arch       %s", h.Arch),
		fmt.Sprintf("  Uptime     %s", formatUptime(h.Uptime)),
		fmt.Sprintf("  Admin      %s", admin),
	}
	if h.RAMTotal > 0 {
		hostLines = append(hostLines, fmt.Sprintf("  RAM        %s  (%.0f%% used)", ui.FormatSize(int64(h.RAMTotal)), h.RAMUsedPc))
	}
	hostCard := card(strings.Join(hostLines, "\n"))

	parts := []string{"", title, "", driveCard, "", hostCard}
	for _, w := range s.Warnings {
		parts = append(parts, ui.MutedStyle().Render("  "+ui.IconWarning+" "+w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func card(body string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1).
		Render(body)
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
