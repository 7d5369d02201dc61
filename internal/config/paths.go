package config

import (
	"path/filepath"

	"github.com/mrz1836/railsci/internal/constants"
)

// ProjectConfigPath returns the path of the optional per-workspace config file.
func ProjectConfigPath(workspace string) string {
	return filepath.Join(workspace, constants.ProjectConfigName)
}

// LogDir returns the directory holding the railsci log file.
func LogDir(home string) string {
	return filepath.Join(home, constants.RailsCIHome, constants.LogsDir)
}

// PersistentCachePath returns the persistent asset cache for a job.
func PersistentCachePath(home, job string) string {
	return filepath.Join(home, constants.PersistentCacheDir, job)
}
