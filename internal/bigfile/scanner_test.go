package bigfile

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeSized(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "big.iso"), 4096)
	writeSized(t, filepath.Join(root, "small.txt"), 10)
	writeSized(t, filepath.Join(root, "a", "b", "deep.bin"), 8192)
	writeSized(t, filepath.Join(root, "a", "driver.SYS"), 9000)
	writeSized(t, filepath.Join(root, "skipme", "hidden.bin"), 10000)
	writeSized(t, filepath.Join(root, "c", "mid.dat"), 5000)
	return root
}

func TestScanFindsLargeFilesSorted(t *testing.T) {
	root := fixture(t)
	s := NewScanner(Options{
		Workers:  2,
		MinSize:  1000,
		Excludes: []string{filepath.Join(root, "skipme")},
		SkipExt:  map[string]bool{".sys": true},
	})

	files, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"deep.bin", "mid.dat", "big.iso"}, names)
	assert.EqualValues(t, 5, s.Scanned(), "every non-directory entry outside excludes is counted")
	assert.EqualValues(t, 4, s.Dirs(), "root, a, a/b and c; the excluded folder is never read")
	assert.Empty(t, s.Warnings())
}

func TestScanExcludeIsCaseInsensitive(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("case-insensitive paths only on Windows")
	}
	root := fixture(t)
	s := NewScanner(Options{MinSize: 1, Excludes: []string{filepath.Join(root, "SKIPME")}})
	files, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	for _, f := range files {
		assert.NotEqual(t, "hidden.bin", f.Name())
	}
}

func TestScanDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	writeSized(t, filepath.Join(outside, "target.bin"), 4096)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.bin"), filepath.Join(root, "file-link")))
	// A loop back to the root must not hang the scan.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	files, err := NewScanner(Options{MinSize: 1}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "one.bin")
	writeSized(t, p, 2048)

	files, err := NewScanner(Options{MinSize: 1024}).Scan(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, p, files[0].Path)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner(Options{}).Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanCancelled(t *testing.T) {
	root := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := NewScanner(Options{MinSize: 1}).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files)
}

func TestScannerReuse(t *testing.T) {
	root := fixture(t)
	s := NewScanner(Options{MinSize: 4096})
	first, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	second, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestSortByAndTop(t *testing.T) {
	now := time.Now()
	files := []File{
		{Path: "/x/b.bin", Size: 10, ModTime: now.Add(-time.Hour)},
		{Path: "/x/A.bin", Size: 30, ModTime: now.Add(-2 * time.Hour)},
		{Path: "/x/c.bin", Size: 20, ModTime: now},
	}

	SortBy(files, SortSize)
	assert.Equal(t, "/x/A.bin", files[0].Path)
	assert.Equal(t, "/x/b.bin", files[2].Path)

	SortBy(files, SortName)
	assert.Equal(t, []string{"A.bin", "b.bin", "c.bin"}, []string{files[0].Name(), files[1].Name(), files[2].Name()})

	SortBy(files, SortModified)
	assert.Equal(t, "/x/c.bin", files[0].Path)

	assert.Len(t, Top(files, 2), 2)
	assert.Len(t, Top(files, 0), 3)
	assert.Len(t, Top(files, 10), 3)
	assert.EqualValues(t, 60, TotalSize(files))

	assert.Equal(t, SortName, SortSize.Next())
	assert.Equal(t, SortSize, SortModified.Next())
}
