// Package bigfile finds the largest files under a directory tree and lets
// the user review and remove them.
package bigfile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kio/ccleanplus/internal/core"
)

// File is one scan hit.
type File struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Name returns the base name of the file.
func (f File) Name() string { return filepath.Base(f.Path) }

// Options configures a Scanner.
type Options struct {
	// Workers bounds concurrent directory reads. Zero picks 4.
	Workers int
	// MinSize is the smallest file size reported, in bytes.
	MinSize int64
	// Excludes are path prefixes never descended into.
	Excludes []string
	// SkipExt lists lower-case extensions (".sys") that are never reported.
	SkipExt map[string]bool
	Log     zerolog.Logger
}

// Scanner walks a directory tree in parallel collecting files at or above
// a size threshold.
type Scanner struct {
	sem      chan struct{}
	minSize  int64
	excludes []string
	skipExt  map[string]bool
	log      zerolog.Logger

	mu       sync.Mutex
	found    []File
	warnings []string

	scanned atomic.Int64
	dirs    atomic.Int64
}

// NewScanner creates a scanner with bounded concurrency.
func NewScanner(opts Options) *Scanner {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	ex := make([]string, 0, len(opts.Excludes))
	for _, e := range opts.Excludes {
		if n := core.NormalizePath(e); n != "" {
			ex = append(ex, n)
		}
	}
	return &Scanner{
		sem:      make(chan struct{}, workers),
		minSize:  opts.MinSize,
		excludes: ex,
		skipExt:  opts.SkipExt,
		log:      opts.Log,
	}
}

// Scanned returns the number of files examined so far. Safe to call while
// Scan is running.
func (s *Scanner) Scanned() int64 { return s.scanned.Load() }

// Dirs returns the number of directories read so far.
func (s *Scanner) Dirs() int64 { return s.dirs.Load() }

// Warnings returns unreadable paths encountered during the last scan.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

func (s *Scanner) add(f File) {
	s.mu.Lock()
	s.found = append(s.found, f)
	s.mu.Unlock()
}

func (s *Scanner) excluded(path string) bool {
	for _, ex := range s.excludes {
		if core.HasPathPrefix(path, ex) {
			return true
		}
	}
	return false
}

// Scan walks root and returns matching files sorted by size, largest
// first. When ctx is cancelled the files found so far are returned
// together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, root string) ([]File, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(longPath(root))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.found = nil
	s.warnings = nil
	s.mu.Unlock()
	s.scanned.Store(0)
	s.dirs.Store(0)

	start := time.Now()
	if info.IsDir() {
		s.scanDir(ctx, root)
	} else {
		s.consider(root, info)
	}

	s.mu.Lock()
	files := s.found
	s.found = nil
	s.mu.Unlock()
	SortBy(files, SortSize)

	s.log.Debug().
		Str("root", root).
		Int64("scanned", s.Scanned()).
		Int("found", len(files)).
		Dur("took", time.Since(start)).
		Msg("big file scan finished")

	return files, ctx.Err()
}

// scanDir holds the semaphore only during ReadDir so nested directories
// never wait on their parent's slot.
func (s *Scanner) scanDir(ctx context.Context, dir string) {
	if ctx.Err() != nil {
		return
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	entries, err := os.ReadDir(longPath(dir))
	<-s.sem
	s.dirs.Add(1)

	if err != nil {
		s.addWarning("cannot read " + dir + ": " + err.Error())
		return
	}

	var wg sync.WaitGroup
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		child := filepath.Join(dir, e.Name())

		if e.Type()&os.ModeSymlink != 0 || e.Type()&os.ModeIrregular != 0 {
			continue
		}
		if e.IsDir() {
			if s.excluded(child) || isReparsePoint(child) {
				continue
			}
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				s.scanDir(ctx, p)
			}(child)
			continue
		}

		s.scanned.Add(1)
		if s.skipExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			s.addWarning("cannot stat " + child + ": " + err.Error())
			continue
		}
		s.consider(child, info)
	}
	wg.Wait()
}

func (s *Scanner) consider(path string, info os.FileInfo) {
	if !info.Mode().IsRegular() || info.Size() < s.minSize {
		return
	}
	s.add(File{Path: path, Size: info.Size(), ModTime: info.ModTime()})
}

// longPath adds the \\?\ prefix for paths exceeding MAX_PATH on Windows.
func longPath(path string) string {
	if filepath.Separator == '\\' && len(path) >= 260 && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}

// SortKey orders scan results.
type SortKey int

const (
	SortSize SortKey = iota
	SortName
	SortModified
)

func (k SortKey) String() string {
	switch k {
	case SortName:
		return "name"
	case SortModified:
		return "modified"
	default:
		return "size"
	}
}

// Next cycles through the sort keys.
func (k SortKey) Next() SortKey { return (k + 1) % 3 }

// SortBy sorts files in place. Size and modification time sort
// descending; name sorts ascending, case-insensitive. Ties fall back to path.
func SortBy(files []File, key SortKey) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		switch key {
		case SortName:
			an, bn := strings.ToLower(a.Name()), strings.ToLower(b.Name())
			if an != bn {
				return an < bn
			}
		case SortModified:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
		default:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		}
		return a.Path < b.Path
	})
}

// Top returns at most n files from an already-sorted slice.
func Top(files []File, n int) []File {
	if n <= 0 || n >= len(files) {
		return files
	}
	return files[:n]
}

// TotalSize sums the sizes of files.
func TotalSize(files []File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
