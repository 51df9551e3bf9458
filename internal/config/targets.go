package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind says how a clean target's Path is interpreted.
type Kind string

const (
	// KindDir cleans every direct child of a directory.
	KindDir Kind = "dir"
	// KindFile removes a single file.
	KindFile Kind = "file"
	// KindGlob removes children of a directory whose names match Pattern.
	KindGlob Kind = "glob"
)

// CleanTarget represents a category of files that can be cleaned.
type CleanTarget struct {
	// Name is the unique identifier for this target.
	Name string `mapstructure:"name" json:"name"`

	// Label is the display name.
	Label string `mapstructure:"label" json:"label"`

	// Path is the directory or file to clean. Environment references are
	// expanded when the target list is built.
	Path string `mapstructure:"path" json:"path"`

	Kind Kind `mapstructure:"kind" json:"kind"`

	// Pattern is the case-insensitive file glob used by KindGlob.
	Pattern string `mapstructure:"pattern" json:"pattern,omitempty"`

	// Safe targets are checked by default and selected by "select safe".
	Safe bool `mapstructure:"safe" json:"safe"`

	// Note is a short human-readable remark.
	Note string `mapstructure:"note" json:"note"`

	// RequiresAdmin indicates whether elevated privileges are needed.
	RequiresAdmin bool `mapstructure:"requires_admin" json:"requires_admin"`

	// Category groups related targets ("system", "user", "gpu", "browser", "dev", "update").
	Category string `mapstructure:"category" json:"category"`
}

// DisplayPath renders the path the way the target list shows it; glob
// targets carry their pattern after a " | " separator.
func (t CleanTarget) DisplayPath() string {
	if t.Kind == KindGlob {
		return t.Path + " | " + t.Pattern
	}
	return t.Path
}

// Validate checks that a target is well-formed.
func (t CleanTarget) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("clean target has no name")
	}
	if t.Path == "" {
		return fmt.Errorf("clean target %q has no path", t.Name)
	}
	switch t.Kind {
	case KindDir, KindFile:
	case KindGlob:
		if t.Pattern == "" {
			return fmt.Errorf("glob target %q has no pattern", t.Name)
		}
		if _, err := filepath.Match(t.Pattern, ""); err != nil {
			return fmt.Errorf("glob target %q: bad pattern %q: %w", t.Name, t.Pattern, err)
		}
	default:
		return fmt.Errorf("clean target %q has unknown kind %q", t.Name, t.Kind)
	}
	return nil
}

// GetCleanTargets returns all built-in cleanup targets with paths expanded.
func GetCleanTargets() []CleanTarget {
	sr := winDir()
	la := localAppData()
	pd := programData()
	J := filepath.Join

	steam := steamDir()
	if steam == "" {
		steam = J(la, "Steam")
	}

	return []CleanTarget{
		// ── Windows ─────────────────────────────────────────────
		{Name: "UserTemp", Label: "User temp files", Path: expand("%TEMP%"), Kind: KindDir, Safe: true, Note: "common junk, safe", Category: "user"},
		{Name: "SystemTemp", Label: "System temp files", Path: J(sr, "Temp"), Kind: KindDir, Safe: true, Note: "may need admin", RequiresAdmin: true, Category: "system"},
		{Name: "Prefetch", Label: "Prefetch", Path: J(sr, "Prefetch"), Kind: KindDir, Note: "slows first launch of apps", RequiresAdmin: true, Category: "system"},
		{Name: "CBSLogs", Label: "CBS logs", Path: J(sr, "Logs", "CBS"), Kind: KindDir, Safe: true, Note: "fairly safe", RequiresAdmin: true, Category: "system"},
		{Name: "DISMLogs", Label: "DISM logs", Path: J(sr, "Logs", "DISM"), Kind: KindDir, Safe: true, Note: "fairly safe", RequiresAdmin: true, Category: "system"},
		{Name: "LiveKernelReports", Label: "LiveKernelReports", Path: J(sr, "LiveKernelReports"), Kind: KindDir, Safe: true, Note: "kernel dumps", RequiresAdmin: true, Category: "system"},
		{Name: "WERUser", Label: "WER (user)", Path: J(la, "Microsoft", "Windows", "WER"), Kind: KindDir, Safe: true, Note: "crash reports", Category: "user"},
		{Name: "WERSystem", Label: "WER (system)", Path: J(sr, "System32", "config", "systemprofile", "AppData", "Local", "Microsoft", "Windows", "WER"), Kind: KindDir, Note: "needs admin", RequiresAdmin: true, Category: "system"},
		{Name: "Minidump", Label: "Minidump", Path: J(sr, "Minidump"), Kind: KindDir, Safe: true, Note: "crash dumps", RequiresAdmin: true, Category: "system"},
		{Name: "MemoryDump", Label: "MEMORY.DMP", Path: J(sr, "MEMORY.DMP"), Kind: KindFile, Note: "check only when not debugging", RequiresAdmin: true, Category: "system"},
		{Name: "Thumbnails", Label: "Thumbnail cache", Path: J(la, "Microsoft", "Windows", "Explorer"), Kind: KindGlob, Pattern: "thumbcache*.db", Safe: true, Note: "thumbcache*.db", Category: "user"},

		// ── GPU shader caches ───────────────────────────────────
		{Name: "D3DSCache", Label: "D3DSCache", Path: J(la, "D3DSCache"), Kind: KindDir, Note: "Direct3D shader cache", Category: "gpu"},
		{Name: "NvidiaDX", Label: "NVIDIA DX", Path: J(la, "NVIDIA", "DXCache"), Kind: KindDir, Note: "NVIDIA shader cache", Category: "gpu"},
		{Name: "NvidiaGL", Label: "NVIDIA GL", Path: J(la, "NVIDIA", "GLCache"), Kind: KindDir, Note: "NVIDIA OpenGL cache", Category: "gpu"},
		{Name: "NvidiaCompute", Label: "NVIDIA Compute", Path: J(la, "NVIDIA", "ComputeCache"), Kind: KindDir, Note: "CUDA", Category: "gpu"},
		{Name: "NVCache", Label: "NV_Cache", Path: J(pd, "NVIDIA Corporation", "NV_Cache"), Kind: KindDir, Note: "NVIDIA CUDA/compute cache", Category: "gpu"},
		{Name: "AmdDX", Label: "AMD DX", Path: J(la, "AMD", "DxCache"), Kind: KindDir, Note: "AMD shader cache", Category: "gpu"},
		{Name: "AmdGL", Label: "AMD GL", Path: J(la, "AMD", "GLCache"), Kind: KindDir, Note: "AMD OpenGL cache", Category: "gpu"},

		// ── Applications ────────────────────────────────────────
		{Name: "SteamShader", Label: "Steam shader cache", Path: J(steam, "steamapps", "shadercache"), Kind: KindDir, Note: "Steam", Category: "app"},
		{Name: "SteamDownloading", Label: "Steam download temp", Path: J(steam, "steamapps", "downloading"), Kind: KindDir, Note: "download leftovers", Category: "app"},
		{Name: "EdgeCache", Label: "Edge cache", Path: J(la, "Microsoft", "Edge", "User Data", "Default", "Cache"), Kind: KindDir, Note: "browser", Category: "browser"},
		{Name: "EdgeCodeCache", Label: "Edge code cache", Path: J(la, "Microsoft", "Edge", "User Data", "Default", "Code Cache"), Kind: KindDir, Note: "JS", Category: "browser"},
		{Name: "ChromeCache", Label: "Chrome cache", Path: J(la, "Google", "Chrome", "User Data", "Default", "Cache"), Kind: KindDir, Note: "browser", Category: "browser"},
		{Name: "ChromeCodeCache", Label: "Chrome code cache", Path: J(la, "Google", "Chrome", "User Data", "Default", "Code Cache"), Kind: KindDir, Note: "JS", Category: "browser"},
		{Name: "PipCache", Label: "pip cache", Path: J(la, "pip", "Cache"), Kind: KindDir, Safe: true, Note: "Python", Category: "dev"},
		{Name: "NuGetCache", Label: "NuGet cache", Path: J(la, "NuGet", "v3-cache"), Kind: KindDir, Safe: true, Note: ".NET", Category: "dev"},

		// ── Windows Update ──────────────────────────────────────
		{Name: "WUDownload", Label: "WU download", Path: J(sr, "SoftwareDistribution", "Download"), Kind: KindDir, Note: "update cache", RequiresAdmin: true, Category: "update"},
		{Name: "DeliveryOptimization", Label: "Delivery Optimization", Path: J(sr, "SoftwareDistribution", "DeliveryOptimization"), Kind: KindDir, Note: "needs admin", RequiresAdmin: true, Category: "update"},
	}
}

// Selection tracks which targets are checked. It is ordered like the
// target list it was created from.
type Selection struct {
	Targets []CleanTarget
	checked []bool
}

// NewSelection starts with each target's Safe flag as its checked state.
func NewSelection(targets []CleanTarget) *Selection {
	s := &Selection{Targets: targets, checked: make([]bool, len(targets))}
	s.SelectSafe()
	return s
}

// SelectSafe checks exactly the safe targets.
func (s *Selection) SelectSafe() {
	for i, t := range s.Targets {
		s.checked[i] = t.Safe
	}
}

// SelectAll checks every target.
func (s *Selection) SelectAll() {
	for i := range s.checked {
		s.checked[i] = true
	}
}

// SelectNone clears every check.
func (s *Selection) SelectNone() {
	for i := range s.checked {
		s.checked[i] = false
	}
}

// SelectNames checks only the named targets (case-insensitive) and
// reports names that matched nothing.
func (s *Selection) SelectNames(names []string) error {
	s.SelectNone()
	var unknown []string
	for _, n := range names {
		found := false
		for i, t := range s.Targets {
			if strings.EqualFold(t.Name, n) {
				s.checked[i] = true
				found = true
			}
		}
		if !found {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown clean target(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Set changes one target's checked state.
func (s *Selection) Set(i int, checked bool) {
	if i >= 0 && i < len(s.checked) {
		s.checked[i] = checked
	}
}

// Checked reports whether target i is checked.
func (s *Selection) Checked(i int) bool {
	return i >= 0 && i < len(s.checked) && s.checked[i]
}

// Chosen returns the checked targets, in list order, with their indices.
func (s *Selection) Chosen() []Indexed {
	var out []Indexed
	for i, t := range s.Targets {
		if s.checked[i] {
			out = append(out, Indexed{Index: i, Target: t})
		}
	}
	return out
}

// Indexed pairs a target with its position in the full list.
type Indexed struct {
	Index  int
	Target CleanTarget
}
