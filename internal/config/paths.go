package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "setedit"

// UserConfigDir returns the user-level config directory.
// It follows the XDG Base Directory Specification through adrg/xdg:
// - Linux: $XDG_CONFIG_HOME/setedit (default ~/.config/setedit)
// - macOS: ~/Library/Application Support/setedit
// - Windows: %LOCALAPPDATA%\setedit
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// UserConfigPath returns the preferred user-level config file.
func UserConfigPath() string {
	return filepath.Join(UserConfigDir(), "config.yml")
}

// UserConfigPaths returns every user-level config file that is consulted,
// in order of preference.
func UserConfigPaths() []string {
	dir := UserConfigDir()
	return []string{
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.json"),
	}
}

// DefaultLogFile returns the suggested log file location under XDG_STATE_HOME.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, "setedit.log")
}
