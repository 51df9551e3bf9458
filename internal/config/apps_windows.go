//go:build windows

package config

import (
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// appLocation is one registry value that records where an application
// is installed.
type appLocation struct {
	root  registry.Key
	path  string
	value string
}

var steamLocations = []appLocation{
	{registry.CURRENT_USER, `Software\Valve\Steam`, "SteamPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Valve\Steam`, "InstallPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath"},
}

// steamDir returns the Steam install directory recorded in the registry,
// or "" when Steam is not installed.
func steamDir() string {
	for _, loc := range steamLocations {
		if p := readStringValue(loc.root, loc.path, loc.value); p != "" {
			return filepath.Clean(p)
		}
	}
	return ""
}

// readStringValue reads a string value, returning "" on any error.
func readStringValue(root registry.Key, path, name string) string {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer key.Close()

	val, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return expand(val)
}
