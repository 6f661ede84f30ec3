// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring between CLI handlers.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/mathrender"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/textpipe"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
)

// =============================================================================
// STORE WIRING
// =============================================================================

// OpenKV opens the configured storage backend.
func OpenKV(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemKV(), nil
	case "sqlite":
		dir, err := cfg.StateDir()
		if err != nil {
			return nil, err
		}
		return storage.OpenSQLiteKV(filepath.Join(dir, "mathtutor.db"))
	case "file", "":
		dir, err := cfg.StateDir()
		if err != nil {
			return nil, err
		}
		return storage.NewFileKVWithDir(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// OpenStore opens the thread store with the configured debounce window.
func OpenStore(cfg *config.Config) (*storage.ThreadStore, error) {
	kv, err := OpenKV(cfg)
	if err != nil {
		return nil, err
	}
	window := time.Duration(cfg.Storage.DebounceMs) * time.Millisecond
	if window <= 0 {
		window = storage.DefaultDebounceWindow
	}
	return storage.NewThreadStoreWithWindow(kv, window), nil
}

// =============================================================================
// ANSWER RENDERING
// =============================================================================

// NewTutor builds the reply backend for cfg. Remote endpoints are not
// implemented yet; the local tutor serves every configuration.
func NewTutor(cfg *config.Config) tutor.Tutor {
	lt := tutor.NewLocalTutor()
	if cfg.Tutor.StreamDelayMs > 0 {
		lt.StreamDelay = time.Duration(cfg.Tutor.StreamDelayMs) * time.Millisecond
	}
	return lt
}

// NewAnswerRenderer builds the repair-and-typeset pipeline for CLI output.
// With a TTY it uses the full markdown renderer; piped output stays plain.
func NewAnswerRenderer(cfg *config.Config) func(string) string {
	var engine mathrender.Engine
	if cfg.Render.MathEngine == "symbols" {
		engine = mathrender.NewSymbolEngine()
	}

	if IsStdoutTTY() && ColorEnabled() {
		// BlockRenderer runs the repair pipeline itself
		block, err := mathrender.NewBlockRenderer(engine, TerminalWidth(), cfg.Render.MarkdownStyle)
		if err == nil {
			return block.Render
		}
	}

	inline := mathrender.NewInlineRenderer(engine)
	return func(s string) string {
		return inline.Render(textpipe.Clean(s))
	}
}
