package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/ui"
)

var targetsJSON bool

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List clean targets",
	Long:  "List every clean target with its path, category and whether it is selected by default.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := settings.CleanTargets()
		if targetsJSON {
			return printJSON(os.Stdout, targets)
		}

		t := newTable("#", "", "Name", "Category", "Path", "Note")
		for i, tg := range targets {
			mark := ui.IconBoxOff
			if tg.Safe {
				mark = ui.IconBoxOn
			}
			note := tg.Note
			if tg.RequiresAdmin {
				note = "admin; " + note
			}
			t.Row(strconv.Itoa(i+1), mark, tg.Label, tg.Category, tg.DisplayPath(), note)
		}
		fmt.Println(headerLine("Clean targets"))
		fmt.Println(t.Render())
		fmt.Println(ui.MutedStyle().Render("  [x] = selected by --safe (the default)"))
		return nil
	},
}

func init() {
	targetsCmd.Flags().BoolVar(&targetsJSON, "json", false, "Output targets as JSON")
}
