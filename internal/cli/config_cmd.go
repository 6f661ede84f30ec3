// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration handlers for the mathtutor CLI.
//
// Command: config
// Short:   Inspect and initialize the configuration
//
// Examples:
//   mathtutor config show
//   mathtutor config path
//   mathtutor config init
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/mathtutor-tui/internal/config"
)

// HandleConfig routes the config subcommands.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		configShow()
	case "path":
		configPath()
	case "init":
		configInit()
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand %q\n", args.Subcommand)
		os.Exit(1)
	}
}

func configShow() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("storage.backend        = %s\n", cfg.Storage.Backend)
	fmt.Printf("storage.dir            = %s\n", cfg.Storage.Dir)
	fmt.Printf("storage.debounce_ms    = %d\n", cfg.Storage.DebounceMs)
	fmt.Printf("storage.watch_external = %t\n", cfg.Storage.WatchExternal)
	fmt.Printf("render.math_engine     = %s\n", cfg.Render.MathEngine)
	fmt.Printf("render.markdown_style  = %s\n", cfg.Render.MarkdownStyle)
	fmt.Printf("render.syntax_theme    = %s\n", cfg.Render.SyntaxTheme)
	fmt.Printf("ui.theme               = %s\n", cfg.UI.Theme)
	fmt.Printf("ui.compact_mode        = %t\n", cfg.UI.CompactMode)
	fmt.Printf("ui.show_timestamps     = %t\n", cfg.UI.ShowTimestamps)
	fmt.Printf("ui.sidebar_width       = %d\n", cfg.UI.SidebarWidth)
	fmt.Printf("export.dir             = %s\n", cfg.Export.Dir)
	fmt.Printf("export.format          = %s\n", cfg.Export.Format)
	fmt.Printf("tutor.endpoint         = %s\n", cfg.Tutor.Endpoint)
	fmt.Printf("tutor.stream_delay_ms  = %d\n", cfg.Tutor.StreamDelayMs)
}

func configPath() {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func configInit() {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "config already exists at %s\n", path)
		os.Exit(1)
	}

	if err := config.Save(config.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("wrote " + path)
}
