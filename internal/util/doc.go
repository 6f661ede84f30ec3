// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package util provides shared helpers for the mathtutor TUI.

# Atomic File Writes (atomic.go)

AtomicWriteFile persists data with the write-temp, fsync, rename pattern so
the chat state file is never left half-written, even on crash or power loss.

# String Helpers (string.go)

Rune- and width-aware truncation built on go-runewidth, used anywhere chat
content is cut to fit a terminal column budget (thread titles, previews,
status lines).
*/
package util
