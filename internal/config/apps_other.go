//go:build !windows

package config

func steamDir() string { return "" }
