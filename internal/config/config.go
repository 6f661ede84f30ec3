// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for mathtutor.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.mathtutor/config.toml
//   - ~/.mathtutor/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/mathtutor-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mathtutor configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Rendering configuration
	Render RenderConfig `toml:"render" json:"render"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`

	// Tutor backend configuration
	Tutor TutorConfig `toml:"tutor" json:"tutor"`
}

// StorageConfig contains chat state persistence configuration.
type StorageConfig struct {
	// Backend selects the persistence backend: "file", "sqlite", "memory"
	// "file" (default): one JSON file under Dir, atomic writes
	// "sqlite": shared state database, safe across processes
	// "memory": no persistence, state lives for the session only
	Backend string `toml:"backend" json:"backend"`
	// Dir is the state directory (empty = default ~/.mathtutor/state)
	Dir string `toml:"dir" json:"dir"`
	// DebounceMs is the save coalescing window in milliseconds
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
	// WatchExternal reloads state when another process rewrites it
	WatchExternal bool `toml:"watch_external" json:"watch_external"`
}

// RenderConfig contains reply rendering configuration.
type RenderConfig struct {
	// MathEngine selects math typesetting: "symbols" (built-in Unicode
	// fallback) or "off" (math spans shown as typed)
	MathEngine string `toml:"math_engine" json:"math_engine"`
	// MarkdownStyle is the glamour style: "auto", "dark", "light", "notty"
	MarkdownStyle string `toml:"markdown_style" json:"markdown_style"`
	// WordWrap is the render width in columns (0 = follow terminal)
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// SyntaxTheme is the chroma theme for code blocks
	SyntaxTheme string `toml:"syntax_theme" json:"syntax_theme"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowTimestamps displays message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// SidebarWidth is the thread list width in columns
	SidebarWidth int `toml:"sidebar_width" json:"sidebar_width"`
}

// TutorConfig contains reply backend configuration.
type TutorConfig struct {
	// Endpoint is reserved for a remote tutor backend. Empty selects
	// the built-in local tutor.
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// StreamDelayMs spaces streamed reply chunks in milliseconds
	StreamDelayMs int `toml:"stream_delay_ms" json:"stream_delay_ms"`
}

// ExportConfig contains transcript export configuration.
type ExportConfig struct {
	// Dir is where exports are written (empty = current directory)
	Dir string `toml:"dir" json:"dir"`
	// Format is the default export format: "markdown" or "json"
	Format string `toml:"format" json:"format"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Storage: StorageConfig{
			Backend:       "file",
			Dir:           "",
			DebounceMs:    250,
			WatchExternal: false,
		},

		Render: RenderConfig{
			MathEngine:    "symbols",
			MarkdownStyle: "auto",
			WordWrap:      0,
			SyntaxTheme:   "monokai",
		},

		UI: UIConfig{
			Theme:          "dark",
			CompactMode:    false,
			ShowTimestamps: false,
			SidebarWidth:   28,
		},

		Export: ExportConfig{
			Dir:    "",
			Format: "markdown",
		},

		Tutor: TutorConfig{
			Endpoint:      "",
			StreamDelayMs: 20,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the mathtutor configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mathtutor"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Defaults only (with any load error for informational purposes)
	cfg, err := finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// finishLoad applies env overrides, fills defaults, and validates.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Storage
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.DebounceMs == 0 {
		cfg.Storage.DebounceMs = defaults.Storage.DebounceMs
	}

	// Render
	if cfg.Render.MathEngine == "" {
		cfg.Render.MathEngine = defaults.Render.MathEngine
	}
	if cfg.Render.MarkdownStyle == "" {
		cfg.Render.MarkdownStyle = defaults.Render.MarkdownStyle
	}
	if cfg.Render.SyntaxTheme == "" {
		cfg.Render.SyntaxTheme = defaults.Render.SyntaxTheme
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.SidebarWidth == 0 {
		cfg.UI.SidebarWidth = defaults.UI.SidebarWidth
	}

	// Export
	if cfg.Export.Format == "" {
		cfg.Export.Format = defaults.Export.Format
	}

	// Tutor
	if cfg.Tutor.StreamDelayMs == 0 {
		cfg.Tutor.StreamDelayMs = defaults.Tutor.StreamDelayMs
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# mathtutor configuration file")
	fmt.Fprintln(file, "# Generated by mathtutor - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validBackends := map[string]bool{"file": true, "sqlite": true, "memory": true}
	if !validBackends[strings.ToLower(c.Storage.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, memory", c.Storage.Backend),
		})
	}

	if c.Storage.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "storage.debounce_ms",
			Message: "debounce_ms cannot be negative",
		})
	}

	validEngines := map[string]bool{"symbols": true, "off": true}
	if !validEngines[strings.ToLower(c.Render.MathEngine)] {
		errs = append(errs, ValidationError{
			Field:   "render.math_engine",
			Message: fmt.Sprintf("invalid engine '%s', must be one of: symbols, off", c.Render.MathEngine),
		})
	}

	validStyles := map[string]bool{"auto": true, "dark": true, "light": true, "notty": true}
	if !validStyles[strings.ToLower(c.Render.MarkdownStyle)] {
		errs = append(errs, ValidationError{
			Field:   "render.markdown_style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: auto, dark, light, notty", c.Render.MarkdownStyle),
		})
	}

	if c.Render.WordWrap < 0 {
		errs = append(errs, ValidationError{
			Field:   "render.word_wrap",
			Message: "word_wrap cannot be negative",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("sidebar_width must be 16-60, got %d", c.UI.SidebarWidth),
		})
	}

	validFormats := map[string]bool{"markdown": true, "json": true}
	if !validFormats[strings.ToLower(c.Export.Format)] {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: markdown, json", c.Export.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - MATHTUTOR_BACKEND: overrides storage.backend
//   - MATHTUTOR_STATE_DIR: overrides storage.dir
//   - MATHTUTOR_THEME: overrides ui.theme
//   - MATHTUTOR_MATH_ENGINE: overrides render.math_engine
//   - MATHTUTOR_STYLE: overrides render.markdown_style
//   - MATHTUTOR_EXPORT_DIR: overrides export.dir
//   - MATHTUTOR_COMPACT: set to "1" or "true" for compact layout
func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("MATHTUTOR_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}

	if dir := os.Getenv("MATHTUTOR_STATE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}

	if theme := os.Getenv("MATHTUTOR_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if engine := os.Getenv("MATHTUTOR_MATH_ENGINE"); engine != "" {
		c.Render.MathEngine = engine
	}

	if style := os.Getenv("MATHTUTOR_STYLE"); style != "" {
		c.Render.MarkdownStyle = style
	}

	if dir := os.Getenv("MATHTUTOR_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}

	if endpoint := os.Getenv("MATHTUTOR_ENDPOINT"); endpoint != "" {
		c.Tutor.Endpoint = endpoint
	}

	if compact := os.Getenv("MATHTUTOR_COMPACT"); compact != "" {
		c.UI.CompactMode = compact == "1" || strings.ToLower(compact) == "true"
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// StateDir returns the resolved state directory.
func (c *Config) StateDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}
