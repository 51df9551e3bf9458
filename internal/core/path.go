package core

import (
	"path/filepath"
	"strings"

	"github.com/kio/ccleanplus/internal/envutil"
)

// NormalizePath turns a displayed path back into a filesystem path: it
// drops a trailing " | pattern" annotation, strips surrounding quotes,
// expands environment variables and uses the native separator.
func NormalizePath(text string) string {
	if text == "" {
		return ""
	}
	p, _, _ := strings.Cut(text, " |")
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"'`)
	p = envutil.ExpandWindowsEnv(p)
	p = strings.ReplaceAll(p, "/", string(filepath.Separator))
	p = strings.ReplaceAll(p, `\`, string(filepath.Separator))
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// HasPathPrefix reports whether path equals prefix or lies below it.
// The comparison is case-insensitive and ignores separator style.
func HasPathPrefix(path, prefix string) bool {
	p := foldPath(path)
	pre := foldPath(prefix)
	if pre == "" {
		return false
	}
	if p == pre {
		return true
	}
	if !strings.HasSuffix(pre, "/") {
		pre += "/"
	}
	return strings.HasPrefix(p, pre)
}

func foldPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimRight(p, "/")
	if strings.HasSuffix(p, ":") {
		p += "/"
	}
	return strings.ToLower(p)
}

// SamePath compares two paths the way Windows does.
func SamePath(a, b string) bool {
	return foldPath(a) == foldPath(b)
}
