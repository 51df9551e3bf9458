//go:build windows

package core

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToRecycleBin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "recycle-me.tmp")
	writeFile(t, file, 32)

	require.NoError(t, MoveToRecycleBin(file))
	assert.NoFileExists(t, file)
}

func TestDeleterUsesRecycleBin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "recycle-me.tmp")
	writeFile(t, file, 64)

	d := NewDeleter(nil, zerolog.Nop())
	res, err := d.Delete(file, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecycled, res.Outcome)
	assert.EqualValues(t, 64, res.Size)
	assert.NoFileExists(t, file)
}
