package bigfile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kio/ccleanplus/internal/ui"
)

var (
	clrDim    = ui.ColorMuted
	clrFile   = ui.ColorText
	clrLarge  = ui.ColorWarning
	clrCursor = ui.ColorPrimary
)

// hugeFile marks rows rendered in the warning color.
const hugeFile = 4 << 30

func (m PickerModel) renderView() string {
	if m.quitting && m.phase != phaseScanning {
		return ""
	}
	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	if m.phase == phaseScanning {
		s.WriteString(m.renderScanning())
	} else {
		s.WriteString(m.renderBody(w))
	}
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m PickerModel) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorCoral).
		Render("  " + ui.IconDiamond + " Large Files")

	mode := "recycle bin"
	switch {
	case m.cfg.Remover == nil:
		mode = "off"
	case m.cfg.Permanent:
		mode = "permanent"
	}
	info := fmt.Sprintf("  %s    %d files  %s    sort: %s    delete: %s",
		m.cfg.Root, len(m.files), ui.FormatSize(TotalSize(m.files)), m.sortKey, mode)
	infoLine := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(info)

	inner := lipgloss.JoinVertical(lipgloss.Left, title, infoLine)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorCoral).
		Width(w - 2).
		Render(inner)
}

func (m PickerModel) renderScanning() string {
	return fmt.Sprintf("  %s Scanning… %d files examined in %d folders", m.spinner.View(), m.scanned, m.dirs)
}

// ─── Body ────────────────────────────────────────────────────────────────────

func (m PickerModel) renderBody(w int) string {
	if len(m.files) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  (no files at or above the size threshold)")
	}

	vh := m.viewportHeight()
	var lines []string
	for i := m.offset; i < len(m.files) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderRow(i, w))
	}
	if len(m.files) > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d files ──", min(m.offset+vh, len(m.files)), len(m.files))))
	}
	return strings.Join(lines, "\n")
}

func (m PickerModel) renderRow(i, w int) string {
	f := m.files[i]

	box := ui.IconBoxOff
	if m.checked[f.Path] {
		box = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(ui.IconBoxOn)
	}

	color := clrFile
	if f.Size >= hugeFile {
		color = clrLarge
	}

	maxPath := w - 34
	if maxPath < 12 {
		maxPath = 12
	}
	path := f.Path
	if r := []rune(path); len(r) > maxPath {
		path = "…" + string(r[len(r)-maxPath+1:])
	}

	num := lipgloss.NewStyle().Foreground(clrDim).Render(fmt.Sprintf("%3d.", i+1))
	size := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%10s", ui.FormatSize(f.Size)))
	date := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(f.ModTime.Format("2006-01-02"))
	line := fmt.Sprintf("  %s %s %s  %s  %s", num, box, size, date, path)

	if i == m.cursor {
		cursor := lipgloss.NewStyle().Foreground(clrCursor).Bold(true).Render(ui.IconBlock)
		line = " " + cursor + line[2:]
	}
	return line
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m PickerModel) renderFooter() string {
	var parts []string

	if m.err != nil {
		parts = append(parts, ui.ErrorStyle().Render("  "+ui.IconError+" "+m.err.Error()))
	}
	if m.deleted > 0 {
		parts = append(parts, ui.SuccessStyle().Render(
			fmt.Sprintf("  %s %d removed, %s freed", ui.IconCheck, m.deleted, ui.FormatSize(m.freed))))
	}

	switch {
	case m.phase == phaseDeleting:
		parts = append(parts, fmt.Sprintf("  %s Deleting…", m.spinner.View()))
	case m.confirmDelete:
		targets := m.deleteTargets()
		parts = append(parts, lipgloss.NewStyle().Foreground(ui.ColorError).Bold(true).Render(
			fmt.Sprintf("  %s Press Enter to delete %d file(s), %s", ui.IconWarning, len(targets), ui.FormatSize(TotalSize(targets)))))
	case m.phase == phaseScanning:
		parts = append(parts, ui.HintBarStyle().Render("  q cancel"))
	default:
		hints := []string{"↑↓ nav", "space toggle", "a all", "n none", "s sort", "Enter open"}
		if m.cfg.Remover != nil {
			hints = append(hints, "⌫ delete")
		}
		hints = append(hints, "q quit")
		parts = append(parts, ui.HintBarStyle().Render("  "+strings.Join(hints, " "+ui.IconPipe+" ")))
	}
	return strings.Join(parts, "\n")
}
