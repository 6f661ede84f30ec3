// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the command-line interface around the mathtutor TUI.

The package parses arguments, routes commands, and implements the non-TUI
surfaces: one-shot questions, a readline REPL, thread inspection, export,
and config management. All persistent state goes through the same
storage.ThreadStore the TUI uses, so threads started in one surface are
visible in the others.

# Commands

	mathtutor                     Start the TUI (default)
	mathtutor ask <question>      Ask one question and print the answer
	mathtutor chat                Interactive REPL without the TUI
	mathtutor threads list        List saved threads
	mathtutor threads show <id>   Print a thread
	mathtutor threads delete <id> Delete a thread
	mathtutor export <id>         Export a thread to a file
	mathtutor config show         Print the active configuration
	mathtutor version             Print version information

Thread IDs accept unique prefixes, so "mathtutor threads show thr_a1" works
when exactly one thread ID starts with that prefix.

# Files

cli.go        - Command enum, Parse, version and help output
args.go       - Unified flag and positional argument parsing
ask.go        - One-shot question handler
chat.go       - liner-based REPL with persistent history
threads.go    - Thread list/show/delete and export handlers
config_cmd.go - Config show/path/init handlers
terminal.go   - TTY, width, and color detection
helpers.go    - Store wiring and the answer rendering pipeline
*/
package cli
