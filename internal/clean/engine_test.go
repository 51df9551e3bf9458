package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kio/ccleanplus/internal/config"
	"github.com/kio/ccleanplus/internal/core"
)

func writeSized(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

// junk lays out a dir target, a glob target and a file target.
func junk(t *testing.T) (string, []config.CleanTarget) {
	t.Helper()
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "temp", "a.tmp"), 100)
	writeSized(t, filepath.Join(root, "temp", "sub", "b.tmp"), 200)
	writeSized(t, filepath.Join(root, "explorer", "thumbcache_32.db"), 300)
	writeSized(t, filepath.Join(root, "explorer", "ThumbCache_256.DB"), 400)
	writeSized(t, filepath.Join(root, "explorer", "iconcache_16.db"), 50)
	writeSized(t, filepath.Join(root, "MEMORY.DMP"), 1000)

	return root, []config.CleanTarget{
		{Name: "temp", Path: filepath.Join(root, "temp"), Kind: config.KindDir},
		{Name: "thumbs", Path: filepath.Join(root, "explorer"), Kind: config.KindGlob, Pattern: "thumbcache*.db"},
		{Name: "dump", Path: filepath.Join(root, "MEMORY.DMP"), Kind: config.KindFile},
		{Name: "gone", Path: filepath.Join(root, "missing"), Kind: config.KindDir},
	}
}

func newTestCleaner(recycle func(string) error) *Cleaner {
	d := core.NewDeleter(nil, zerolog.Nop())
	d.Recycle = recycle
	return &Cleaner{
		Deleter:            d,
		IsAdmin:            func() bool { return true },
		CreateRestorePoint: func(context.Context) error { return nil },
		Log:                zerolog.Nop(),
	}
}

func TestEstimate(t *testing.T) {
	_, targets := junk(t)

	var (
		mu       sync.Mutex
		seen     []string
		lastDone int
	)
	res, err := Estimate(context.Background(), targets, EstimateOptions{
		Parallel: 2,
		OnTarget: func(ts TargetSize) {
			mu.Lock()
			seen = append(seen, ts.Target.Name)
			mu.Unlock()
		},
		Progress: func(done, total int) {
			assert.Equal(t, 4, total)
			lastDone = done
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Targets, 4)
	assert.EqualValues(t, 300, res.Targets[0].Size)
	assert.EqualValues(t, 700, res.Targets[1].Size, "glob matching ignores case")
	assert.EqualValues(t, 1000, res.Targets[2].Size)
	assert.False(t, res.Targets[3].Exists)
	assert.EqualValues(t, 0, res.Targets[3].Size)
	assert.EqualValues(t, 2000, res.Total)
	assert.ElementsMatch(t, []string{"temp", "thumbs", "dump", "gone"}, seen)
	assert.Equal(t, 4, lastDone)
}

func TestEstimateNoTargets(t *testing.T) {
	_, err := Estimate(context.Background(), nil, EstimateOptions{})
	assert.ErrorIs(t, err, ErrNoTargets)
	assert.Equal(t, "No targets selected.", Describe(err))
}

func TestEstimateCancelled(t *testing.T) {
	_, targets := junk(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Estimate(ctx, targets, EstimateOptions{})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, "Cancelled.", Describe(err))
}

func TestCleanRecyclesFirst(t *testing.T) {
	root, targets := junk(t)
	var recycled []string
	c := newTestCleaner(func(p string) error {
		recycled = append(recycled, p)
		return os.RemoveAll(p)
	})

	sum, err := c.Clean(context.Background(), targets, Options{})
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Recycled, "two temp children, two thumbnails, one dump")
	assert.Equal(t, 0, sum.Deleted)
	assert.Equal(t, 1, sum.Skipped)
	assert.EqualValues(t, 2000, sum.Freed)
	assert.Len(t, recycled, 5)

	assert.DirExists(t, filepath.Join(root, "temp"), "dir targets keep the directory itself")
	assert.FileExists(t, filepath.Join(root, "explorer", "iconcache_16.db"))
	assert.NoFileExists(t, filepath.Join(root, "MEMORY.DMP"))
}

func TestCleanFallsBackToPermanent(t *testing.T) {
	_, targets := junk(t)
	c := newTestCleaner(func(string) error { return errors.New("no shell") })

	sum, err := c.Clean(context.Background(), targets[:1], Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, 0, sum.Recycled)
}

func TestCleanPermanentSkipsRecycleBin(t *testing.T) {
	_, targets := junk(t)
	c := newTestCleaner(func(string) error {
		t.Fatal("recycle bin used for permanent delete")
		return nil
	})

	sum, err := c.Clean(context.Background(), targets, Options{Permanent: true})
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Succeeded())
}

func TestCleanDryRun(t *testing.T) {
	root, targets := junk(t)
	c := newTestCleaner(nil)

	sum, err := c.Clean(context.Background(), targets, Options{DryRun: true, RestorePoint: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2000, sum.Freed)
	assert.False(t, sum.RestorePoint, "dry runs never create restore points")
	assert.FileExists(t, filepath.Join(root, "MEMORY.DMP"))
}

func TestCleanRestorePoint(t *testing.T) {
	_, targets := junk(t)

	c := newTestCleaner(nil)
	calls := 0
	c.CreateRestorePoint = func(context.Context) error { calls++; return nil }
	sum, err := c.Clean(context.Background(), targets[2:3], Options{Permanent: true, RestorePoint: true})
	require.NoError(t, err)
	assert.True(t, sum.RestorePoint)
	assert.Equal(t, 1, calls)

	c = newTestCleaner(nil)
	c.IsAdmin = func() bool { return false }
	c.CreateRestorePoint = func(context.Context) error { t.Fatal("called without admin"); return nil }
	sum, err = c.Clean(context.Background(), targets[:1], Options{Permanent: true, RestorePoint: true})
	require.NoError(t, err)
	assert.False(t, sum.RestorePoint)

	c = newTestCleaner(nil)
	c.CreateRestorePoint = func(context.Context) error { return errors.New("service disabled") }
	sum, err = c.Clean(context.Background(), targets[:1], Options{Permanent: true, RestorePoint: true})
	require.NoError(t, err, "restore point failure is not fatal")
	assert.False(t, sum.RestorePoint)
	assert.Equal(t, 2, sum.Deleted)
}

func TestCleanCancelled(t *testing.T) {
	_, targets := junk(t)
	ctx, cancel := context.WithCancel(context.Background())
	c := newTestCleaner(nil)

	var handled int
	sum, err := c.Clean(ctx, targets, Options{
		Permanent: true,
		OnDelete: func(core.DeleteResult, error) {
			handled++
			cancel()
		},
	})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 1, handled, "stops before the next entry")
	assert.Equal(t, 1, sum.Deleted)
}

func TestCleanNoTargets(t *testing.T) {
	_, err := newTestCleaner(nil).Clean(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestCleanCountsProtectedAsFailed(t *testing.T) {
	root, targets := junk(t)
	c := newTestCleaner(nil)
	c.Deleter.Protected = []string{filepath.Join(root, "MEMORY.DMP")}

	sum, err := c.Clean(context.Background(), targets[2:3], Options{Permanent: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed)
	assert.FileExists(t, filepath.Join(root, "MEMORY.DMP"))
}
