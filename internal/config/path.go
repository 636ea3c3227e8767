// Package config resolves file locations for the application: the config
// directory, the database, and the processed-name cache that sits next to it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path, so users
// can write paths like ~/.local/share/spendsignal or $XDG_DATA_HOME/... in
// config files and flags.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spendsignal"), nil
}

// DefaultDatabasePath returns where the SQLite database lives when no path
// is configured.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "spendsignal", "spendsignal.db"), nil
}

// CachePathFor returns the processed-name cache path for a given database
// path. Keeping the two side by side means deleting the data directory
// resets both.
func CachePathFor(dbPath string) string {
	return dbPath + ".cache"
}
