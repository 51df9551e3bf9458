package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kio/ccleanplus/internal/envutil"
)

// expand resolves environment variables in a path, supporting both
// Windows %VAR% and Unix $VAR / ${VAR} syntax.
func expand(path string) string {
	return envutil.ExpandWindowsEnv(path)
}

// localAppData returns the local app data directory.
func localAppData() string {
	return os.Getenv("LOCALAPPDATA")
}

// appData returns the roaming app data directory.
func appData() string {
	return os.Getenv("APPDATA")
}

// winDir returns the Windows directory, preferring %SystemRoot%.
// Falls back to C:\Windows only if neither variable is set.
func winDir() string {
	for _, k := range []string{"SystemRoot", "WINDIR"} {
		if w := os.Getenv(k); w != "" {
			return w
		}
	}
	return `C:\Windows`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// systemDrive returns the system drive with a trailing backslash (e.g., C:\).
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// SystemDriveLetter returns the bare system drive letter, e.g. "C".
func SystemDriveLetter() string {
	return systemDrive()[:1]
}

// SystemRoot is the root of the system volume: C:\ on Windows, / elsewhere.
func SystemRoot() string {
	if runtime.GOOS != "windows" {
		return "/"
	}
	return systemDrive()
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// programFilesX86 returns the Program Files (x86) directory.
func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// SettingsDir is where ccp.yaml is looked up after the working directory.
func SettingsDir() string {
	if a := appData(); a != "" {
		return filepath.Join(a, "ccp")
	}
	if home, err := os.UserConfigDir(); err == nil {
		return filepath.Join(home, "ccp")
	}
	return "."
}

// GetNeverDeletePaths returns paths that must NEVER be deleted under any
// circumstances. Contents of some of them (Prefetch, Temp) may still be
// cleaned; only the directories themselves are guarded.
func GetNeverDeletePaths() []string {
	w := winDir()
	sd := systemDrive()
	all := []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "assembly"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(w, "Temp"),
		filepath.Join(w, "Prefetch"),
		filepath.Join(w, "Installer"),
		filepath.Join(w, "servicing"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "bootmgr"),
		filepath.Join(sd, "EFI"),
		filepath.Join(sd, "Users"),
		filepath.Join(sd, "Recovery"),
		programFiles(),
		programFilesX86(),
		programData(),
		localAppData(),
		appData(),
		expand("%USERPROFILE%"),
		expand("%TEMP%"),
	}
	out := all[:0]
	for _, p := range all {
		if p != "" && !strings.Contains(p, "%") {
			out = append(out, p)
		}
	}
	return out
}

// DefaultExcludes are path prefixes the large-file scan never descends into.
func DefaultExcludes() []string {
	w := winDir()
	return []string{
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "Installer"),
		programFiles(),
		programFilesX86(),
		filepath.Join(programData(), "Microsoft", "Windows", "WER", "ReportArchive"),
	}
}

// BigFileSkipExt lists extensions (lower case, with dot) the large-file
// scan ignores: driver and paging files cannot be removed safely.
var BigFileSkipExt = map[string]bool{
	".sys": true,
}
