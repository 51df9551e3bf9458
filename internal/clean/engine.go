// Package clean sizes and removes the junk locations described by
// config.CleanTarget.
package clean

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/log"
)

var (
	// ErrNoTargets is returned when Estimate or Clean is given nothing to do.
	ErrNoTargets = errors.New("no targets selected")
	// ErrCancelled is returned when the context ends mid-run. Any partial
	// result is still returned alongside it.
	ErrCancelled = errors.New("cancelled")
)

// ─── Estimate ────────────────────────────────────────────────────────────────

// TargetSize is the estimated reclaimable size of one target.
type TargetSize struct {
	Target config.CleanTarget `json:"target"`
	Exists bool               `json:"exists"`
	Size   int64              `json:"size"`
}

// EstimateOptions configures Estimate.
type EstimateOptions struct {
	// Parallel bounds how many targets are sized at once. Zero means 4.
	Parallel int
	// OnTarget is called once per finished target. Calls are serialized.
	OnTarget func(TargetSize)
	// Progress is called with (done, total) after each target. Calls are serialized.
	Progress func(done, total int)
}

// EstimateResult holds per-target sizes in input order.
type EstimateResult struct {
	Targets []TargetSize `json:"targets"`
	Total   int64        `json:"total"`
}

// Estimate sizes every target without modifying anything.
func Estimate(ctx context.Context, targets []config.CleanTarget, opts EstimateOptions) (EstimateResult, error) {
	if len(targets) == 0 {
		return EstimateResult{}, ErrNoTargets
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = 4
	}

	res := EstimateResult{Targets: make([]TargetSize, len(targets))}
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, t := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			ts := sizeTarget(t)

			mu.Lock()
			defer mu.Unlock()
			res.Targets[i] = ts
			done++
			if opts.OnTarget != nil {
				opts.OnTarget(ts)
			}
			if opts.Progress != nil {
				opts.Progress(done, len(targets))
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, ts := range res.Targets {
		res.Total += ts.Size
	}
	if ctx.Err() != nil {
		return res, ErrCancelled
	}
	return res, nil
}

func sizeTarget(t config.CleanTarget) TargetSize {
	ts := TargetSize{Target: t}
	info, err := os.Stat(t.Path)
	if err != nil {
		return ts
	}
	ts.Exists = true

	switch t.Kind {
	case config.KindFile:
		if info.Mode().IsRegular() {
			ts.Size = info.Size()
		}
	case config.KindGlob:
		for _, m := range globMatches(t.Path, t.Pattern) {
			if !m.IsDir() {
				if fi, err := m.Info(); err == nil {
					ts.Size += fi.Size()
				}
			}
		}
	default:
		if info.IsDir() {
			ts.Size = core.DirSize(t.Path)
		}
	}
	return ts
}

// globMatches lists the direct children of dir whose names match pattern,
// ignoring case.
func globMatches(dir, pattern string) []fs.DirEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	pat := strings.ToLower(pattern)
	var out []fs.DirEntry
	for _, e := range entries {
		if ok, _ := filepath.Match(pat, strings.ToLower(e.Name())); ok {
			out = append(out, e)
		}
	}
	return out
}

// ─── Clean ───────────────────────────────────────────────────────────────────

// Options configures Clean.
type Options struct {
	// Permanent skips the Recycle Bin.
	Permanent bool
	// RestorePoint creates a System Restore point first (admin only).
	RestorePoint bool
	// DryRun reports what would be removed without touching anything.
	DryRun bool
	// Progress is called with (done, total) after each target.
	Progress func(done, total int)
	// OnDelete is called for every path handled, successfully or not.
	OnDelete func(res core.DeleteResult, err error)
}

// Summary counts the outcome of a Clean run.
type Summary struct {
	Deleted  int   `json:"deleted"`
	Recycled int   `json:"recycled"`
	Failed   int   `json:"failed"`
	Skipped  int   `json:"skipped"`
	Freed    int64 `json:"freed"`
	// RestorePoint reports whether a restore point was created.
	RestorePoint bool `json:"restore_point"`
}

// Succeeded is the number of entries removed either way.
func (s Summary) Succeeded() int { return s.Deleted + s.Recycled }

// Cleaner runs Clean with an injectable deleter and restore point hook.
type Cleaner struct {
	Deleter *core.Deleter
	// CreateRestorePoint defaults to the PowerShell Checkpoint-Computer call.
	CreateRestorePoint func(ctx context.Context) error
	// IsAdmin defaults to core.IsAdmin.
	IsAdmin func() bool
	Log     zerolog.Logger
}

// NewCleaner returns a Cleaner guarding the never-delete list.
func NewCleaner() *Cleaner {
	l := log.WithComponent("clean")
	return &Cleaner{
		Deleter:            core.NewDeleter(config.GetNeverDeletePaths(), l),
		CreateRestorePoint: CreateRestorePoint,
		IsAdmin:            core.IsAdmin,
		Log:                l,
	}
}

// Clean removes the contents of every target. Failures on individual
// entries are counted, not returned.
func (c *Cleaner) Clean(ctx context.Context, targets []config.CleanTarget, opts Options) (Summary, error) {
	var sum Summary
	if len(targets) == 0 {
		return sum, ErrNoTargets
	}
	c.Deleter.DryRun = opts.DryRun

	if opts.RestorePoint && !opts.DryRun {
		sum.RestorePoint = c.restorePoint(ctx)
	}

	for i, t := range targets {
		if ctx.Err() != nil {
			return sum, ErrCancelled
		}
		if err := c.cleanTarget(ctx, t, opts, &sum); err != nil {
			return sum, err
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(targets))
		}
	}

	c.Log.Info().
		Int("deleted", sum.Deleted).
		Int("recycled", sum.Recycled).
		Int("failed", sum.Failed).
		Int64("freed", sum.Freed).
		Bool("dry_run", opts.DryRun).
		Msg("clean finished")
	return sum, nil
}

func (c *Cleaner) restorePoint(ctx context.Context) bool {
	isAdmin := c.IsAdmin
	if isAdmin == nil {
		isAdmin = core.IsAdmin
	}
	if !isAdmin() {
		c.Log.Warn().Msg("restore point needs administrator rights, skipping")
		return false
	}
	if c.CreateRestorePoint == nil {
		return false
	}
	if err := c.CreateRestorePoint(ctx); err != nil {
		c.Log.Warn().Err(err).Msg("could not create restore point, continuing")
		return false
	}
	c.Log.Info().Msg("restore point created")
	return true
}

func (c *Cleaner) cleanTarget(ctx context.Context, t config.CleanTarget, opts Options, sum *Summary) error {
	info, err := os.Stat(t.Path)
	if err != nil {
		c.Log.Debug().Str("target", t.Name).Str("path", t.Path).Msg("target missing, skipping")
		sum.Skipped++
		return nil
	}

	var paths []string
	switch t.Kind {
	case config.KindFile:
		paths = []string{t.Path}
	case config.KindGlob:
		for _, m := range globMatches(t.Path, t.Pattern) {
			paths = append(paths, filepath.Join(t.Path, m.Name()))
		}
	default:
		if !info.IsDir() {
			sum.Skipped++
			return nil
		}
		entries, err := os.ReadDir(t.Path)
		if err != nil {
			c.Log.Warn().Err(err).Str("path", t.Path).Msg("cannot list target")
			sum.Failed++
			return nil
		}
		for _, e := range entries {
			paths = append(paths, filepath.Join(t.Path, e.Name()))
		}
	}

	for _, p := range paths {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		res, err := c.Deleter.Delete(p, opts.Permanent)
		if opts.OnDelete != nil {
			opts.OnDelete(res, err)
		}
		if err != nil {
			c.Log.Debug().Err(err).Str("path", p).Msg("delete failed")
			sum.Failed++
			continue
		}
		switch res.Outcome {
		case core.OutcomeRecycled:
			sum.Recycled++
		case core.OutcomeDeleted:
			sum.Deleted++
		case core.OutcomeDryRun:
			sum.Deleted++
		case core.OutcomeMissing:
			sum.Skipped++
			continue
		}
		sum.Freed += res.Size
	}
	return nil
}

// Describe renders err for the user, mapping the sentinel outcomes.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrNoTargets):
		return "No targets selected."
	case errors.Is(err, ErrCancelled):
		return "Cancelled."
	case err == nil:
		return ""
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
