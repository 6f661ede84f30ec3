// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULT CONFIG TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.DebounceMs != 250 {
		t.Errorf("Storage.DebounceMs = %d, want 250", cfg.Storage.DebounceMs)
	}
	if cfg.Render.MathEngine != "symbols" {
		t.Errorf("Render.MathEngine = %q, want symbols", cfg.Render.MathEngine)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want dark", cfg.UI.Theme)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0.0"

[storage]
backend = "sqlite"
debounce_ms = 100

[render]
math_engine = "off"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.DebounceMs != 100 {
		t.Errorf("Storage.DebounceMs = %d, want 100", cfg.Storage.DebounceMs)
	}
	if cfg.Render.MathEngine != "off" {
		t.Errorf("Render.MathEngine = %q, want off", cfg.Render.MathEngine)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}

	// Unset fields fall back to defaults.
	if cfg.Render.MarkdownStyle != "auto" {
		t.Errorf("Render.MarkdownStyle = %q, want default auto", cfg.Render.MarkdownStyle)
	}
	if cfg.UI.SidebarWidth != 28 {
		t.Errorf("UI.SidebarWidth = %d, want default 28", cfg.UI.SidebarWidth)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"storage": {"backend": "memory"}, "ui": {"theme": "auto"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q, want auto", cfg.UI.Theme)
	}
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "cloud"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("unknown backend should fail validation")
	}
}

func TestLoadFromPath_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[[ not toml"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("malformed TOML should fail to load")
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.UI.CompactMode = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", loaded.Storage.Backend)
	}
	if !loaded.UI.CompactMode {
		t.Error("UI.CompactMode lost in round trip")
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Render.WordWrap = 100

	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Render.WordWrap != 100 {
		t.Errorf("Render.WordWrap = %d, want 100", loaded.Render.WordWrap)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"negative debounce", func(c *Config) { c.Storage.DebounceMs = -1 }, true},
		{"bad engine", func(c *Config) { c.Render.MathEngine = "latex" }, true},
		{"bad style", func(c *Config) { c.Render.MarkdownStyle = "dracula" }, true},
		{"negative wrap", func(c *Config) { c.Render.WordWrap = -5 }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"sidebar too narrow", func(c *Config) { c.UI.SidebarWidth = 4 }, true},
		{"bad export format", func(c *Config) { c.Export.Format = "pdf" }, true},
		{"case insensitive", func(c *Config) { c.UI.Theme = "DARK" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MATHTUTOR_BACKEND", "sqlite")
	t.Setenv("MATHTUTOR_THEME", "light")
	t.Setenv("MATHTUTOR_COMPACT", "true")
	t.Setenv("MATHTUTOR_STATE_DIR", "/tmp/mt-state")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
	if !cfg.UI.CompactMode {
		t.Error("MATHTUTOR_COMPACT=true should enable compact mode")
	}
	if cfg.Storage.Dir != "/tmp/mt-state" {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
}

func TestStateDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = "/custom/state"

	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatalf("StateDir failed: %v", err)
	}
	if dir != "/custom/state" {
		t.Errorf("StateDir = %q, want /custom/state", dir)
	}
}
