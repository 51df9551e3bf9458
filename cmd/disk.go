package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/disk"
)

var diskJSON bool

var diskCmd = &cobra.Command{
	Use:   "disk [drive-letter]",
	Short: "Show the media type of a drive",
	Long:  "Detect whether a drive is an SSD or HDD and the scan concurrency ccp uses for it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		letter := config.SystemDriveLetter()
		if len(args) == 1 {
			letter = args[0]
		}
		if letter == "" {
			return fmt.Errorf("empty drive letter")
		}
		typ, threads := disk.Detect(cmd.Context(), letter)
		if diskJSON {
			return printJSON(os.Stdout, map[string]any{"drive": letter, "type": typ, "scan_threads": threads})
		}
		fmt.Printf("  Drive %s:  %s  (%d scan threads)\n", letter[:1], typ, threads)
		return nil
	},
}

func init() {
	diskCmd.Flags().BoolVar(&diskJSON, "json", false, "Output as JSON")
}
