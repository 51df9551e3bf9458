package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kio/ccleanplus/internal/bigfile"
	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/disk"
	"github.com/kio/ccleanplus/internal/log"
	"github.com/kio/ccleanplus/internal/ui"
)

var bigFlags struct {
	root      string
	minSize   string
	limit     int
	workers   int
	excludes  []string
	json      bool
	delete    bool
	permanent bool
	report    string
}

var bigfilesCmd = &cobra.Command{
	Use:   "bigfiles [root]",
	Short: "Find the largest files on a drive",
	Long: `Scan a drive or folder for files above a size threshold.

On a terminal the results open in an interactive picker; with --delete
checked files can be removed from there. Otherwise a table is printed.

Removal is permanent unless bigfile.permanent is false in ccp.yaml or
--permanent=false is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBigFiles,
}

func init() {
	f := bigfilesCmd.Flags()
	f.StringVar(&bigFlags.root, "root", "", "Folder to scan (default from settings, usually the system drive)")
	f.StringVar(&bigFlags.minSize, "min-size", "", "Smallest file to report, e.g. 500MB")
	f.IntVar(&bigFlags.limit, "limit", 0, "Maximum number of results")
	f.IntVar(&bigFlags.workers, "workers", 0, "Concurrent directory readers (default depends on disk type)")
	f.StringSliceVar(&bigFlags.excludes, "exclude", nil, "Extra path prefixes to skip")
	f.BoolVar(&bigFlags.json, "json", false, "Output results as JSON")
	f.BoolVar(&bigFlags.delete, "delete", false, "Allow deleting files from the picker")
	f.BoolVar(&bigFlags.permanent, "permanent", false, permanentUsage("bigfile.permanent"))
	f.StringVar(&bigFlags.report, "report", "", "Also save the results to this file (.json or text)")
}

func runBigFiles(cmd *cobra.Command, args []string) error {
	bs := settings.BigFile
	root := bs.Root
	if bigFlags.root != "" {
		root = bigFlags.root
	}
	if len(args) == 1 {
		root = args[0]
	}
	root = core.NormalizePath(root)
	if root == "" {
		return errors.New("no scan root given")
	}

	minSize := int64(bs.MinSizeMB) << 20
	if bigFlags.minSize != "" {
		n, err := core.ParseSize(bigFlags.minSize)
		if err != nil {
			return fmt.Errorf("--min-size: %w", err)
		}
		minSize = n
	}
	if minSize <= 0 {
		return errors.New("--min-size must be positive")
	}

	limit := bs.MaxResults
	if bigFlags.limit > 0 {
		limit = bigFlags.limit
	}

	workers := bs.Workers
	if bigFlags.workers > 0 {
		workers = bigFlags.workers
	}
	if workers <= 0 {
		letter := filepath.VolumeName(root)
		if letter == "" {
			letter = config.SystemDriveLetter()
		}
		var typ disk.Type
		typ, workers = disk.Detect(cmd.Context(), letter)
		l := log.WithComponent("bigfiles")
		l.Debug().Str("disk", string(typ)).Int("workers", workers).Msg("scan concurrency")
	}

	permanent := resolvePermanent(cmd, bs.Permanent, bigFlags.permanent)

	scanner := bigfile.NewScanner(bigfile.Options{
		Workers:  workers,
		MinSize:  minSize,
		Excludes: append(append([]string(nil), bs.Excludes...), bigFlags.excludes...),
		SkipExt:  config.BigFileSkipExt,
		Log:      log.WithComponent("bigfile"),
	})

	ctx, stop := signalContext()
	defer stop()

	if !bigFlags.json && ui.Interactive() {
		return runPicker(ctx, scanner, root, limit, minSize, permanent)
	}

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(250 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				progressLine(os.Stderr, "Scanning… %d files in %d folders", scanner.Scanned(), scanner.Dirs())
			}
		}
	}()
	files, err := scanner.Scan(ctx, root)
	close(done)
	clearProgress(os.Stderr)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	files = bigfile.Top(files, limit)
	report := bigfile.NewReport(root, minSize, files)

	if bigFlags.json {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else {
		bigfile.PrintTable(os.Stdout, root, files)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, warnLine("Scan cancelled; results are partial."))
	}
	return saveReport(report)
}

func runPicker(ctx context.Context, scanner *bigfile.Scanner, root string, limit int, minSize int64, permanent bool) error {
	cfg := bigfile.PickerConfig{
		Scanner:   scanner,
		Root:      root,
		Limit:     limit,
		Permanent: permanent,
	}
	if bigFlags.delete {
		cfg.Remover = core.NewDeleter(config.GetNeverDeletePaths(), log.WithComponent("bigfile"))
	}

	final, err := tea.NewProgram(bigfile.NewPicker(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	m, ok := final.(bigfile.PickerModel)
	if !ok {
		return nil
	}
	res := m.Result()
	if res.ScanErr != nil && !errors.Is(res.ScanErr, context.Canceled) {
		return res.ScanErr
	}
	if res.Deleted > 0 {
		fmt.Println(okLine(fmt.Sprintf("Removed %d file(s), %s freed", res.Deleted, ui.FormatSize(res.Freed))))
	}
	if res.Missing > 0 {
		fmt.Println(warnLine(fmt.Sprintf("%d file(s) were already gone", res.Missing)))
	}
	if res.Failed > 0 {
		fmt.Println(warnLine(fmt.Sprintf("%d file(s) could not be removed", res.Failed)))
	}
	return saveReport(bigfile.NewReport(root, minSize, res.Files))
}

func saveReport(r bigfile.Report) error {
	if bigFlags.report == "" {
		return nil
	}
	if err := r.Save(bigFlags.report); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, okLine("Report saved to "+bigFlags.report))
	return nil
}
