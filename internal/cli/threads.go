// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// threads.go - Thread management handlers for the mathtutor CLI.
//
// Command: threads
// Short:   List, show, and delete saved threads
//
// Examples:
//   mathtutor threads list
//   mathtutor threads show thr_a1b2c3
//   mathtutor threads delete thr_a1b2c3
//   mathtutor export thr_a1b2c3 --format json --out ./notes
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/export"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// HandleThreads routes the threads subcommands.
func HandleThreads(args Args) {
	_, store := mustOpenStore(args)
	defer func() { _ = store.Close() }()

	st := store.LoadState()

	switch args.Subcommand {
	case "", "list", "ls":
		listThreads(st)

	case "show":
		showThread(st, args)

	case "delete", "rm":
		deleteThread(st, args, store)

	default:
		fmt.Fprintf(os.Stderr, "unknown threads subcommand %q\n", args.Subcommand)
		os.Exit(1)
	}
}

// HandleExport exports a thread to a file.
func HandleExport(args Args) {
	cfg, store := mustOpenStore(args)
	defer func() { _ = store.Close() }()

	st := store.LoadState()
	th, ok := resolveThread(st, args.ThreadID)
	if !ok {
		fmt.Fprintf(os.Stderr, "thread %q not found\n", args.ThreadID)
		os.Exit(1)
	}

	opts := export.DefaultOptions()
	if cfg.Export.Dir != "" {
		opts.OutputDir = cfg.Export.Dir
	}
	if args.OutputDir != "" {
		opts.OutputDir = args.OutputDir
	}

	format := cfg.Export.Format
	if args.Format != "" {
		format = args.Format
	}

	exp, err := export.ForFormat(format, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export error: %v\n", err)
		os.Exit(1)
	}

	path, err := export.ExportToFile(th, exp, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export error: %v\n", err)
		os.Exit(1)
	}
	if !args.Quiet {
		fmt.Println("exported to " + path)
	}
}

// =============================================================================
// SUBCOMMAND IMPLEMENTATIONS
// =============================================================================

func listThreads(st thread.State) {
	threads := storage.SortedThreads(st)
	if len(threads) == 0 {
		fmt.Println("no saved threads")
		return
	}

	for _, th := range threads {
		marker := "  "
		if th.ID == st.CurrentThreadID {
			marker = "> "
		}
		fmt.Printf("%s%-24s %-40s %3d messages  %s\n",
			marker, th.ID, th.Title, th.MessageCount(),
			th.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func showThread(st thread.State, args Args) {
	th, ok := resolveThread(st, args.ThreadID)
	if !ok {
		fmt.Fprintf(os.Stderr, "thread %q not found\n", args.ThreadID)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	render := NewAnswerRenderer(cfg)

	fmt.Println("# " + th.Title)
	fmt.Println()
	for _, msg := range th.Messages {
		fmt.Printf("[%s] %s\n", msg.Role.DisplayName(),
			msg.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Println(render(msg.Content))
		fmt.Println()
	}
}

func deleteThread(st thread.State, args Args, store *storage.ThreadStore) {
	th, ok := resolveThread(st, args.ThreadID)
	if !ok {
		fmt.Fprintf(os.Stderr, "thread %q not found\n", args.ThreadID)
		os.Exit(1)
	}

	delete(st.Threads, th.ID)
	if st.CurrentThreadID == th.ID {
		st.CurrentThreadID = ""
	}
	if err := store.SaveState(st); err != nil {
		fmt.Fprintf(os.Stderr, "save error: %v\n", err)
		os.Exit(1)
	}
	if !args.Quiet {
		fmt.Println("deleted " + th.ID)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveThread finds a thread by exact ID or unique prefix.
func resolveThread(st thread.State, id string) (thread.Thread, bool) {
	if id == "" {
		return thread.Thread{}, false
	}
	if th, ok := st.Threads[id]; ok {
		return th, true
	}

	var match thread.Thread
	var found int
	for tid, th := range st.Threads {
		if strings.HasPrefix(tid, id) {
			match = th
			found++
		}
	}
	if found == 1 {
		return match, true
	}
	return thread.Thread{}, false
}

// mustOpenStore loads config and opens the store, exiting on failure.
func mustOpenStore(args Args) (*config.Config, *storage.ThreadStore) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if args.NoColor {
		DisableColor()
	}

	store, err := OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage error: %v\n", err)
		os.Exit(1)
	}
	return cfg, store
}
