package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDeleterPermanent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cache")
	writeFile(t, filepath.Join(target, "a.bin"), 100)
	writeFile(t, filepath.Join(target, "sub", "b.bin"), 50)

	d := NewDeleter(nil, zerolog.Nop())
	res, err := d.Delete(target, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, res.Outcome)
	assert.EqualValues(t, 150, res.Size)
	assert.NoDirExists(t, target)
}

func TestDeleterRecycleFallsBack(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.tmp")
	writeFile(t, file, 10)

	var recycled []string
	d := NewDeleter(nil, zerolog.Nop())
	d.Recycle = func(p string) error {
		recycled = append(recycled, p)
		return errors.New("no shell")
	}

	res, err := d.Delete(file, false)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, recycled)
	assert.Equal(t, OutcomeDeleted, res.Outcome)
	assert.NoFileExists(t, file)
}

func TestDeleterRecycleSucceeds(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.tmp")
	writeFile(t, file, 10)

	d := NewDeleter(nil, zerolog.Nop())
	d.Recycle = func(p string) error { return os.Remove(p) }

	res, err := d.Delete(file, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecycled, res.Outcome)
}

func TestDeleterMissingIsNotError(t *testing.T) {
	d := NewDeleter(nil, zerolog.Nop())
	res, err := d.Delete(filepath.Join(t.TempDir(), "gone"), true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMissing, res.Outcome)
}

func TestDeleterDryRunKeepsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "keep.log")
	writeFile(t, file, 7)

	d := NewDeleter(nil, zerolog.Nop())
	d.DryRun = true
	res, err := d.Delete(file, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDryRun, res.Outcome)
	assert.EqualValues(t, 7, res.Size)
	assert.FileExists(t, file)
}

func TestDeleterRefusesProtected(t *testing.T) {
	dir := t.TempDir()
	d := NewDeleter([]string{dir}, zerolog.Nop())

	_, err := d.Delete(dir, true)
	require.ErrorIs(t, err, ErrProtectedPath)
	assert.DirExists(t, dir)

	_, err = d.Delete("relative/path", true)
	require.ErrorIs(t, err, ErrProtectedPath)

	_, err = d.Delete(string(filepath.Separator), true)
	require.ErrorIs(t, err, ErrProtectedPath)
}

func TestDeleterRefusesParentOfProtected(t *testing.T) {
	home := t.TempDir()
	docs := filepath.Join(home, "Documents")
	writeFile(t, filepath.Join(docs, "thesis.docx"), 5)
	writeFile(t, filepath.Join(home, "scratch.tmp"), 5)

	d := NewDeleter([]string{docs}, zerolog.Nop())
	_, err := d.Delete(home, true)
	require.ErrorIs(t, err, ErrProtectedPath)
	assert.FileExists(t, filepath.Join(docs, "thesis.docx"))

	res, err := d.Delete(filepath.Join(home, "scratch.tmp"), true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, res.Outcome)
}

func TestGuards(t *testing.T) {
	protected := []string{`C:\Users\kio`, `C:\Windows\Temp`}
	tests := []struct {
		path string
		want bool
	}{
		{`C:\`, true},
		{`d:`, true},
		{`/`, true},
		{`C:\Users`, true},
		{`c:\users\KIO`, true},
		{`C:\Windows`, true},
		{`C:\Windows\Temp\cab_1`, false},
		{`C:\Users\kio\AppData\Local\Temp\x`, false},
		{`D:\Games`, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Guards(tt.path, protected))
		})
	}
}

func TestDirSizeSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 30)
	writeFile(t, filepath.Join(dir, "nested", "b"), 12)

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "big"), 1000)
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.EqualValues(t, 42, DirSize(dir))
}
