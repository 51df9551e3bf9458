package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/ui"
)

func headerLine(s string) string {
	return ui.TitleStyle().Render("  " + ui.IconDiamond + " " + s)
}

func okLine(s string) string {
	return ui.SuccessStyle().Render("  " + ui.IconCheck + " " + s)
}

func warnLine(s string) string {
	return ui.WarningStyle().Render("  " + ui.IconWarning + " " + s)
}

func errLine(s string) string {
	return ui.ErrorStyle().Render("  " + ui.IconError + " " + s)
}

// signalContext is cancelled on Ctrl+C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// confirm asks a yes/no question on stdin; anything but y/yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "  %s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a bordered table in the shared palette.
func newTable(headers ...string) *table.Table {
	head := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
}

// progressLine redraws a single status line on a terminal.
func progressLine(w io.Writer, format string, args ...any) {
	if !ui.IsTerminal(os.Stdout) {
		return
	}
	fmt.Fprintf(w, "\r\033[K  "+format, args...)
}

func clearProgress(w io.Writer) {
	if ui.IsTerminal(os.Stdout) {
		fmt.Fprint(w, "\r\033[K")
	}
}

// permanentUsage describes --permanent, whose effective default comes from
// the settings key rather than the flag.
func permanentUsage(key string) string {
	return fmt.Sprintf("Delete permanently instead of using the Recycle Bin (default: %s in ccp.yaml, true unless set)", key)
}

// resolvePermanent lets an explicit --permanent override the configured value.
func resolvePermanent(cmd *cobra.Command, configured, flag bool) bool {
	if cmd.Flags().Changed("permanent") {
		return flag
	}
	return configured
}
