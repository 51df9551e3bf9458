package bigfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFiles() []File {
	mod := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []File{
		{Path: "/data/movie.mkv", Size: 3 << 30, ModTime: mod},
		{Path: "/data/backup.zip", Size: 600 << 20, ModTime: mod},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, "/data", sampleFiles())
	out := buf.String()
	assert.Contains(t, out, "Large files under /data")
	assert.Contains(t, out, "3.00 GB")
	assert.Contains(t, out, "600.00 MB")
	assert.Contains(t, out, "2 files, 3.59 GB total")

	buf.Reset()
	PrintTable(&buf, "/data", nil)
	assert.Contains(t, buf.String(), "No files matched")
}

func TestReportJSON(t *testing.T) {
	r := NewReport("/data", 500<<20, sampleFiles())
	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var back Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "/data", back.Root)
	assert.Equal(t, r.Total, back.Total)
	assert.Len(t, back.Files, 2)

	empty := NewReport("/data", 1, nil)
	assert.NotNil(t, empty.Files, "encodes as [] rather than null")
}

func TestReportSave(t *testing.T) {
	dir := t.TempDir()
	r := NewReport("/data", 500<<20, sampleFiles())

	jsonPath := filepath.Join(dir, "report.JSON")
	require.NoError(t, r.Save(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	txtPath := filepath.Join(dir, "report.txt")
	require.NoError(t, r.Save(txtPath))
	data, err = os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "movie.mkv")
	assert.Contains(t, string(data), "minimum 500.00 MB")
}
