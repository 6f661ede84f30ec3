// mathtutor TUI - A terminal interface for math tutoring chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathtutor-tui/internal/cli"
	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdThreads:
		cli.HandleThreads(args)
	case cli.CmdExport:
		cli.HandleExport(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleHelp()
		os.Exit(1)
	}
}

// runTUI wires the store, tutor, and optional state watcher into the chat
// model and runs the Bubble Tea program.
func runTUI(args cli.Args) {
	// Bubble Tea needs a real terminal on both ends; fall back to the
	// plain REPL when stdin or stdout is redirected.
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		cli.HandleChat(args)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if args.NoColor {
		cli.DisableColor()
	}

	store, err := cli.OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	model := chat.New(cfg, store, cli.NewTutor(cfg))

	// Watch the state file for edits from other processes
	if cfg.Storage.WatchExternal && cfg.Storage.Backend == "file" {
		if watcher, ch := openWatcher(cfg); watcher != nil {
			model.SetWatcher(watcher, ch)
			defer func() { _ = watcher.Close() }()
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openWatcher builds a StateWatcher feeding a notification channel.
// Watch failures are not fatal; the TUI just runs without live reload.
func openWatcher(cfg *config.Config) (*storage.StateWatcher, chan struct{}) {
	dir, err := cfg.StateDir()
	if err != nil {
		return nil, nil
	}

	kv, err := storage.NewFileKVWithDir(dir)
	if err != nil {
		return nil, nil
	}

	ch := make(chan struct{}, 1)
	watcher, err := storage.NewStateWatcher(kv.Path(storage.StateKey), 200*time.Millisecond, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return nil, nil
	}
	if err := watcher.Watch(); err != nil {
		_ = watcher.Close()
		return nil, nil
	}
	return watcher, ch
}
