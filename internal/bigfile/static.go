package bigfile

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/fsutil"
)

// PrintTable writes a plain-text ranking of files. Used when stdout is not
// a terminal and the interactive picker cannot run.
func PrintTable(w io.Writer, root string, files []File) {
	if len(files) == 0 {
		fmt.Fprintln(w, "  No files matched.")
		return
	}

	fmt.Fprintf(w, "  Large files under %s\n", root)
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	for i, f := range files {
		fmt.Fprintf(w, "  %4d. %12s  %s  %s\n", i+1, core.FormatSize(f.Size), f.ModTime.Format("2006-01-02"), f.Path)
	}
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  %d files, %s total\n", len(files), core.FormatSize(TotalSize(files)))
}

// Report is the machine-readable form of a scan.
type Report struct {
	Root      string    `json:"root"`
	MinSize   int64     `json:"min_size"`
	Generated time.Time `json:"generated"`
	Total     int64     `json:"total"`
	Files     []File    `json:"files"`
}

// NewReport builds a Report for files.
func NewReport(root string, minSize int64, files []File) Report {
	if files == nil {
		files = []File{}
	}
	return Report{
		Root:      root,
		MinSize:   minSize,
		Generated: time.Now().UTC().Truncate(time.Second),
		Total:     TotalSize(files),
		Files:     files,
	}
}

// WriteJSON encodes r to w, indented.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Save writes the report atomically. A ".json" path gets JSON, anything
// else gets the plain-text table.
func (r Report) Save(path string) error {
	var b strings.Builder
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := r.WriteJSON(&b); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(&b, "  Generated %s, minimum %s\n", r.Generated.Format(time.RFC3339), core.FormatSize(r.MinSize))
		PrintTable(&b, r.Root, r.Files)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
