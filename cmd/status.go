package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/status"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system drive usage",
	Long:  "Summarise the system drive: usage, media type, Recycle Bin contents and host details.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := status.Collect(cmd.Context())
		if err != nil {
			return err
		}
		if statusJSON {
			return printJSON(os.Stdout, s)
		}
		width := 80
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil {
			width = w
		}
		fmt.Println(status.Render(s, width))
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output status as JSON")
}
