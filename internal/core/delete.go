package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrProtectedPath is returned when a deletion targets a path on the
// never-delete list or a drive root.
var ErrProtectedPath = errors.New("path is protected")

// Outcome describes what happened to a path passed to Deleter.Delete.
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeRecycled
	OutcomeDeleted
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecycled:
		return "recycled"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return "missing"
	}
}

// DeleteResult reports the outcome of one deletion and the bytes it freed.
type DeleteResult struct {
	Path    string
	Outcome Outcome
	Size    int64
}

// Deleter removes files and directories, preferring the Recycle Bin unless
// permanent deletion is requested.
type Deleter struct {
	// Protected paths are refused outright (exact match, case-insensitive).
	Protected []string
	// Recycle moves a path to the Recycle Bin. Defaults to the Shell API.
	Recycle func(path string) error
	DryRun  bool
	Log     zerolog.Logger
}

// NewDeleter returns a Deleter guarding the given paths.
func NewDeleter(protected []string, log zerolog.Logger) *Deleter {
	return &Deleter{Protected: protected, Recycle: MoveToRecycleBin, Log: log}
}

// IsProtected reports whether path may never be removed: it is relative,
// a drive root, on the protected list, or contains a protected path.
func (d *Deleter) IsProtected(path string) bool {
	clean := filepath.Clean(path)
	if clean == "" || clean == "." || !filepath.IsAbs(clean) && filepath.VolumeName(clean) == "" {
		return true
	}
	return Guards(clean, d.Protected)
}

// Guards reports whether removing path, or everything below it, would
// touch a drive root or one of the protected paths.
func Guards(path string, protected []string) bool {
	if IsDriveRoot(path) {
		return true
	}
	for _, p := range protected {
		if HasPathPrefix(p, path) {
			return true
		}
	}
	return false
}

// IsDriveRoot reports whether p names a volume root such as C:\ or /.
func IsDriveRoot(p string) bool {
	f := foldPath(p)
	if f == "" || len(f) == 3 && f[1] == ':' && f[2] == '/' {
		return true
	}
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]
	return vol != "" && (rest == "" || rest == `\` || rest == "/")
}

// Delete removes path. When permanent is false the Recycle Bin is tried
// first; if that fails the path is removed permanently. A missing path
// is not an error.
func (d *Deleter) Delete(path string, permanent bool) (DeleteResult, error) {
	res := DeleteResult{Path: path}
	if d.IsProtected(path) {
		return res, fmt.Errorf("%s: %w", path, ErrProtectedPath)
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		res.Size = DirSize(path)
	} else {
		res.Size = info.Size()
	}

	if d.DryRun {
		res.Outcome = OutcomeDryRun
		return res, nil
	}

	if !permanent && d.Recycle != nil {
		rerr := d.Recycle(path)
		if rerr == nil {
			d.Log.Debug().Str("path", path).Msg("moved to recycle bin")
			res.Outcome = OutcomeRecycled
			return res, nil
		}
		d.Log.Warn().Err(rerr).Str("path", path).Msg("recycle failed, deleting permanently")
	}

	if info.IsDir() && info.Mode()&fs.ModeSymlink == 0 {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return res, fmt.Errorf("delete %s: %w", path, err)
	}
	d.Log.Debug().Str("path", path).Msg("deleted permanently")
	res.Outcome = OutcomeDeleted
	return res, nil
}

// DirSize sums the sizes of all regular files under root without
// following symlinks. Unreadable entries count as zero.
func DirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
