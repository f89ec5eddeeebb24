// setedit - Interactive editor for name=value settings files
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/setedit

// Package config provides layered configuration for setedit using koanf.
// Configuration is loaded with priority: environment variables (SETEDIT_*)
// > explicit config file (--config) > user config
// ($XDG_CONFIG_HOME/setedit/config.yml or config.json) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "SETEDIT_"

// Configuration represents the setedit CLI configuration.
type Configuration struct {
	// Color selects colored output: auto (terminal detection), always or never.
	Color string `koanf:"color" validate:"oneof=auto always never"`
	// Prompt is printed before each interactive command.
	Prompt string `koanf:"prompt" validate:"required"`
	// Banner shows the help hint when an interactive session starts.
	Banner bool `koanf:"banner"`
	// RewriteUnchanged commits rewrites that leave the settings file as it
	// was, instead of discarding the temporary file.
	RewriteUnchanged bool `koanf:"rewrite_unchanged"`
	// LogLevel is the minimum level written by the logger.
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error disabled"`
	// LogFile optionally receives a copy of every log line.
	LogFile string `koanf:"log_file"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	ConfigPath string
	// UserConfigPath overrides the user config location (default: XDG).
	UserConfigPath string
	// SkipUserConfig ignores the user config file entirely.
	SkipUserConfig bool
}

// Load loads configuration from defaults, the user config, an optional
// explicit file and the environment.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if opts.ConfigPath != "" {
		if err := loadConfigFile(k, opts.ConfigPath, "explicit"); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the first user config file that exists.
// YAML is preferred over JSON when both are present.
func loadUserConfig(k *koanf.Koanf, override string) error {
	candidates := []string{override}
	if override == "" {
		candidates = UserConfigPaths()
	}
	for _, path := range candidates {
		if fileExists(path) {
			return loadConfigFile(k, path, "user")
		}
	}
	return nil
}

// loadConfigFile loads a YAML or JSON file, chosen by extension.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return fmt.Errorf("%s config %s: %w", configType, path, os.ErrNotExist)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
	default:
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Color = strings.ToLower(cfg.Color)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.LogFile = expandHomePath(cfg.LogFile)

	return &cfg, nil
}

// fileExists returns true if the path exists
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: SETEDIT_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
