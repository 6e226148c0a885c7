package main

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/alnah/go-pandoc-cmd/internal/config"
)

// Environment variable names.
const (
	envConfigPath  = "PANDOCCMD_CONFIG"
	envPresetStore = "PANDOCCMD_PRESET_STORE"
	envPresetPath  = "PANDOCCMD_PRESET_PATH"
	envOutputDir   = "PANDOCCMD_OUTPUT_DIR"
	envTimeout     = "PANDOCCMD_TIMEOUT"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // PANDOCCMD_CONFIG: config file name or path
	PresetStore string // PANDOCCMD_PRESET_STORE: file or sqlite
	PresetPath  string // PANDOCCMD_PRESET_PATH: preset store location
	OutputDir   string // PANDOCCMD_OUTPUT_DIR: default output directory
	Timeout     string // PANDOCCMD_TIMEOUT: conversion timeout
}

// knownEnvVars lists valid PANDOCCMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:  true,
	envPresetStore: true,
	envPresetPath:  true,
	envOutputDir:   true,
	envTimeout:     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:  getenv(envConfigPath),
		PresetStore: getenv(envPresetStore),
		PresetPath:  getenv(envPresetPath),
		OutputDir:   getenv(envOutputDir),
		Timeout:     getenv(envTimeout),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized PANDOCCMD_* variables.
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "PANDOCCMD_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warnf("unknown environment variable %s (typo?)", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment.
// Precedence: flags > preset > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.PresetStore != "" {
		cfg.Presets.Backend = env.PresetStore
	}
	if env.PresetPath != "" {
		cfg.Presets.Path = env.PresetPath
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout != "" {
		cfg.Conversion.Timeout = env.Timeout
	}
}
