// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea messages exchanged between commands
// and the chat model.
package chat

import (
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// REPLY STREAMING MESSAGES
// =============================================================================

// ReplyChunkMsg carries one streamed piece of the tutor's answer.
type ReplyChunkMsg struct {
	ThreadID string
	Content  string
}

// ReplyDoneMsg signals the tutor finished answering.
type ReplyDoneMsg struct {
	ThreadID string
	Elapsed  time.Duration
}

// ReplyErrorMsg signals the tutor failed to answer.
type ReplyErrorMsg struct {
	ThreadID string
	Err      error
}

// =============================================================================
// PERSISTENCE MESSAGES
// =============================================================================

// SaveScheduledMsg confirms a debounced save was queued.
type SaveScheduledMsg struct{}

// SaveFlushedMsg confirms pending changes hit the disk.
type SaveFlushedMsg struct {
	Err error
}

// StateReloadedMsg carries state re-read after an external change.
type StateReloadedMsg struct {
	State thread.State
	Err   error
}

// ExternalChangeMsg signals the state file changed outside this process.
type ExternalChangeMsg struct{}

// =============================================================================
// ACTION MESSAGES
// =============================================================================

// ExportDoneMsg reports the outcome of a thread export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ClipboardCopiedMsg reports the outcome of copying a reply.
type ClipboardCopiedMsg struct {
	Err error
}

// statusClearMsg clears a transient status line after a delay.
type statusClearMsg struct {
	seq int
}
