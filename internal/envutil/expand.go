// Package envutil expands environment references in Windows-style paths.
package envutil

import (
	"os"
	"strings"
)

// ExpandWindowsEnv resolves %VAR% references as well as Unix $VAR and ${VAR}
// forms. Unknown %VAR% references are left untouched so the result still
// shows what was missing.
func ExpandWindowsEnv(path string) string {
	return expandWith(path, os.LookupEnv)
}

func expandWith(path string, lookup func(string) (string, bool)) string {
	if strings.Contains(path, "%") {
		var b strings.Builder
		rest := path
		for {
			start := strings.IndexByte(rest, '%')
			if start < 0 {
				b.WriteString(rest)
				break
			}
			end := strings.IndexByte(rest[start+1:], '%')
			if end < 0 {
				b.WriteString(rest)
				break
			}
			end += start + 1
			name := rest[start+1 : end]
			b.WriteString(rest[:start])
			if val, ok := lookupFold(name, lookup); ok && name != "" {
				b.WriteString(val)
			} else {
				b.WriteString(rest[start : end+1])
			}
			rest = rest[end+1:]
		}
		path = b.String()
	}

	if strings.Contains(path, "$") {
		path = os.Expand(path, func(name string) string {
			if val, ok := lookupFold(name, lookup); ok {
				return val
			}
			return "$" + name
		})
	}
	return path
}

// lookupFold tries the exact name first, then the upper-case form, since
// Windows variable names are case-insensitive.
func lookupFold(name string, lookup func(string) (string, bool)) (string, bool) {
	if v, ok := lookup(name); ok {
		return v, true
	}
	return lookup(strings.ToUpper(name))
}
