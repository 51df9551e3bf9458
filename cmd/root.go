package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/log"
)

var (
	// Global flags
	debug   bool
	dryRun  bool
	cfgFile string
	elevate bool

	// settings is loaded before every command runs.
	settings config.Settings

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "ccp",
	Short: "Clean junk files and find large files on Windows",
	Long: `C Cleaner Plus - reclaim disk space on Windows.

Removes temporary files, logs, crash dumps, shader and browser caches,
finds the largest files on a drive, and maintains the documentation
site that describes it all.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !core.IsAdmin() {
			fmt.Println(warnLine("Not running as administrator; system targets will be skipped or fail. Use --elevate."))
			fmt.Println()
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Settings file (default ./ccp.yaml or %APPDATA%\\ccp\\ccp.yaml)")
	rootCmd.PersistentFlags().BoolVar(&elevate, "elevate", false, "Relaunch with administrator rights if needed")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(bigfilesCmd)
	rootCmd.AddCommand(diskCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeConfig loads settings, configures logging and handles --elevate.
func initializeConfig(cmd *cobra.Command, _ []string) error {
	s, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	settings = s

	level := s.Log.Level
	if debug {
		level = "debug"
	}
	log.Configure(log.Config{Level: level, JSON: s.Log.JSON})
	l := log.WithComponent("cmd")
	if used != "" {
		l.Debug().Str("file", used).Msg("using settings file")
	}

	if elevate && !core.IsAdmin() {
		if err := core.RelaunchAsAdmin(withoutFlag(os.Args[1:], "--elevate")); err != nil {
			return fmt.Errorf("elevate: %w", err)
		}
		l.Info().Msg("relaunched elevated, exiting")
		os.Exit(0)
	}
	return nil
}

func withoutFlag(args []string, flag string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != flag && a != flag+"=true" {
			out = append(out, a)
		}
	}
	return out
}
