package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-pandoc-cmd/internal/yamlutil"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "go-pandoc-cmd"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits.
const (
	MaxKeyLength     = 64   // settings ID
	MaxValueLength   = 2048 // extraArgs and customVars can be long
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxBackendLength = 16   // "file", "sqlite"
	MaxDefaults      = 128  // number of default entries
)

// Config holds the CLI configuration file.
type Config struct {
	// Defaults are settings-ID keyed values layered under presets and flags.
	Defaults   map[string]any   `yaml:"defaults"`
	Output     OutputConfig     `yaml:"output"`
	Presets    PresetsConfig    `yaml:"presets"`
	Conversion ConversionConfig `yaml:"conversion"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
}

// PresetsConfig selects the preset storage backend.
type PresetsConfig struct {
	Backend string `yaml:"backend"` // "file" (default) or "sqlite"
	Path    string `yaml:"path"`    // Empty = user config dir
}

// ConversionConfig tunes process execution.
type ConversionConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "2m" (empty = default)
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if len(c.Defaults) > MaxDefaults {
		return fmt.Errorf("%w: defaults (%d entries, max %d)", ErrFieldTooLong, len(c.Defaults), MaxDefaults)
	}
	for key, value := range c.Defaults {
		if err := validateFieldLength("defaults key", key, MaxKeyLength); err != nil {
			return err
		}
		if s, ok := value.(string); ok {
			if err := validateFieldLength("defaults."+key, s, MaxValueLength); err != nil {
				return err
			}
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("presets.path", c.Presets.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("presets.backend", c.Presets.Backend, MaxBackendLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Presets.Backend) {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("%w: presets.backend %q (must be file or sqlite)", ErrInvalidField, c.Presets.Backend)
	}

	if _, err := c.Conversion.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses Conversion.Timeout. Zero means "use the default".
func (c ConversionConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: conversion.timeout %q: %v", ErrInvalidField, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: conversion.timeout must be positive, got %s", ErrInvalidField, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with no defaults and the file backend.
func DefaultConfig() *Config {
	return &Config{
		Defaults: map[string]any{},
		Presets:  PresetsConfig{Backend: "file"},
	}
}

// DefaultPresetPath returns where the given backend stores presets when no
// path is configured.
func DefaultPresetPath(backend string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	name := "presets.json"
	if strings.EqualFold(backend, "sqlite") {
		name = "presets.db"
	}
	return filepath.Join(dir, AppDirName, name), nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.Decode(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = map[string]any{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
