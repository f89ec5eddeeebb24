package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return fmt.Sprintf(`# setedit configuration
# Every key can be overridden with an environment variable, e.g. SETEDIT_LOG_LEVEL=debug

color: auto                 # auto | always | never
prompt: "> "                # Interactive prompt
banner: true                # Show the help hint when an interactive session starts
rewrite_unchanged: false    # Replace the settings file even when set/delete/fix change nothing
log_level: warn             # trace | debug | info | warn | error | disabled
log_file: ""                # Also write logs here (e.g. %s)
`, DefaultLogFile())
}

// GetDefaults returns the default configuration values as a map
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"color":             "auto",
		"prompt":            "> ",
		"banner":            true,
		"rewrite_unchanged": false,
		"log_level":         "warn",
		"log_file":          "",
	}
}

// WriteDefaultConfig writes the commented template to path, creating its
// directory. An existing file is left alone and reported with false.
// The template is staged next to path and renamed into place, so a reader
// never sees a partial config.
func WriteDefaultConfig(path string) (bool, error) {
	if fileExists(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteData(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
