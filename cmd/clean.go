package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/clean"
	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/ui"
)

var cleanFlags struct {
	estimate     bool
	all          bool
	safe         bool
	only         []string
	permanent    bool
	restorePoint bool
	yes          bool
	emptyBin     bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long: `Remove temporary files, logs, crash dumps and caches.

By default the safe targets are cleaned (see "ccp targets"). Entries are
deleted permanently unless clean.permanent is false in ccp.yaml or
--permanent=false is given, in which case they go to the Recycle Bin.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.BoolVar(&cleanFlags.estimate, "estimate", false, "Only report how much space each target holds")
	f.BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	f.BoolVar(&cleanFlags.safe, "safe", false, "Clean the safe targets (default)")
	f.BoolVar(&cleanFlags.all, "all", false, "Clean every target")
	f.StringSliceVar(&cleanFlags.only, "only", nil, "Clean only the named targets (comma-separated)")
	f.BoolVar(&cleanFlags.permanent, "permanent", false, permanentUsage("clean.permanent"))
	f.BoolVar(&cleanFlags.restorePoint, "restore-point", false, "Create a System Restore point first (admin)")
	f.BoolVarP(&cleanFlags.yes, "yes", "y", false, "Do not ask for confirmation")
	f.BoolVar(&cleanFlags.emptyBin, "empty-recycle-bin", false, "Also empty the Recycle Bin afterwards")
	cleanCmd.MarkFlagsMutuallyExclusive("safe", "all", "only")
}

func selectTargets() ([]config.CleanTarget, error) {
	sel := config.NewSelection(settings.CleanTargets())
	switch {
	case cleanFlags.all:
		sel.SelectAll()
	case len(cleanFlags.only) > 0:
		if err := sel.SelectNames(cleanFlags.only); err != nil {
			return nil, err
		}
	}
	var out []config.CleanTarget
	for _, c := range sel.Chosen() {
		out = append(out, c.Target)
	}
	return out, nil
}

func runClean(cmd *cobra.Command, args []string) error {
	targets, err := selectTargets()
	if err != nil {
		return err
	}

	admin := core.IsAdmin()
	if !admin {
		for _, t := range targets {
			if t.RequiresAdmin {
				fmt.Println(warnLine("Not running as administrator; some selected targets will fail. Use --elevate."))
				break
			}
		}
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Println(headerLine("Estimating"))
	est, err := clean.Estimate(ctx, targets, clean.EstimateOptions{
		Parallel: settings.Clean.Parallel,
		Progress: func(done, total int) {
			progressLine(os.Stdout, "%d/%d targets sized", done, total)
		},
	})
	clearProgress(os.Stdout)
	if err != nil {
		if errors.Is(err, clean.ErrNoTargets) || errors.Is(err, clean.ErrCancelled) {
			fmt.Println(warnLine(clean.Describe(err)))
			return nil
		}
		return err
	}
	printEstimate(est)

	if cleanFlags.estimate {
		return nil
	}
	if est.Total == 0 && !cleanFlags.emptyBin {
		fmt.Println(okLine("Nothing to clean."))
		return nil
	}

	permanent := resolvePermanent(cmd, settings.Clean.Permanent, cleanFlags.permanent)
	restorePoint := settings.Clean.RestorePoint || cleanFlags.restorePoint

	if !dryRun && !cleanFlags.yes {
		if !ui.Interactive() {
			return errors.New("refusing to delete without confirmation; pass --yes")
		}
		how := "move to the Recycle Bin"
		if permanent {
			how = "PERMANENTLY delete"
		}
		if !confirm(os.Stdin, os.Stdout, fmt.Sprintf("%s %s from %d target(s)?", how, ui.FormatSize(est.Total), len(targets))) {
			fmt.Println(warnLine("Cancelled."))
			return nil
		}
	}

	fmt.Println()
	fmt.Println(headerLine("Cleaning"))
	sum, err := clean.NewCleaner().Clean(ctx, targets, clean.Options{
		Permanent:    permanent,
		RestorePoint: restorePoint,
		DryRun:       dryRun,
		Progress: func(done, total int) {
			progressLine(os.Stdout, "%d/%d targets cleaned", done, total)
		},
	})
	clearProgress(os.Stdout)
	if err != nil && !errors.Is(err, clean.ErrCancelled) {
		return err
	}
	printSummary(sum, dryRun)
	if err != nil {
		fmt.Println(warnLine(clean.Describe(err)))
		return nil
	}

	if cleanFlags.emptyBin {
		return emptyRecycleBin()
	}
	return nil
}

func printEstimate(est clean.EstimateResult) {
	t := newTable("Target", "Size", "Path")
	for _, ts := range est.Targets {
		size := ui.FormatSize(ts.Size)
		if !ts.Exists {
			size = "missing"
		}
		t.Row(ts.Target.Label, size, ts.Target.DisplayPath())
	}
	fmt.Println(t.Render())
	fmt.Printf("  Total: %s\n", ui.FormatSize(est.Total))
}

func printSummary(sum clean.Summary, dry bool) {
	if sum.RestorePoint {
		fmt.Println(okLine("Restore point created"))
	}
	if dry {
		fmt.Println(okLine(fmt.Sprintf("Dry run: %d entries, %s would be freed", sum.Succeeded(), ui.FormatSize(sum.Freed))))
		return
	}
	fmt.Println(okLine(fmt.Sprintf("Freed %s (%d recycled, %d deleted)",
		ui.FormatSize(sum.Freed), sum.Recycled, sum.Deleted)))
	if sum.Failed > 0 {
		fmt.Println(warnLine(strconv.Itoa(sum.Failed) + " entries could not be removed (in use or access denied)"))
	}
}

func emptyRecycleBin() error {
	info, err := clean.QueryRecycleBin()
	if err != nil {
		return err
	}
	if info.Items == 0 {
		fmt.Println(okLine("Recycle Bin is already empty"))
		return nil
	}
	if err := clean.EmptyRecycleBin(dryRun); err != nil {
		return err
	}
	verb := "Emptied"
	if dryRun {
		verb = "Would empty"
	}
	fmt.Println(okLine(fmt.Sprintf("%s Recycle Bin (%s in %d items)", verb, ui.FormatSize(info.Size), info.Items)))
	return nil
}
