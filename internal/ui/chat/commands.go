// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the Bubble Tea commands that bridge the chat model
// to the tutor, the thread store, and the exporters.
package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathtutor-tui/internal/export"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
)

// =============================================================================
// REPLY STREAMING COMMANDS
// =============================================================================

// StartReplyCmd launches the tutor in a goroutine and feeds its chunks into
// the channel. Pair it with ListenReplyCmd, which converts channel reads
// into Bubble Tea messages one at a time.
func StartReplyCmd(ctx context.Context, t tutor.Tutor, history []thread.Message, question, threadID string, ch chan<- tutor.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(ch)
			_ = t.ReplyStream(ctx, history, question, func(chunk tutor.StreamChunk) {
				select {
				case ch <- chunk:
				case <-ctx.Done():
				}
			})
		}()
		return nil
	}
}

// ListenReplyCmd waits for the next chunk on the channel.
func ListenReplyCmd(threadID string, start time.Time, ch <-chan tutor.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return ReplyDoneMsg{ThreadID: threadID, Elapsed: time.Since(start)}
		}
		if chunk.Err != nil {
			return ReplyErrorMsg{ThreadID: threadID, Err: chunk.Err}
		}
		if chunk.Done {
			return ReplyDoneMsg{ThreadID: threadID, Elapsed: time.Since(start)}
		}
		return ReplyChunkMsg{ThreadID: threadID, Content: chunk.Content}
	}
}

// =============================================================================
// PERSISTENCE COMMANDS
// =============================================================================

// ScheduleSaveCmd queues a debounced save of the state.
func ScheduleSaveCmd(store *storage.ThreadStore, st thread.State) tea.Cmd {
	return func() tea.Msg {
		store.SaveStateDebounced(st)
		return SaveScheduledMsg{}
	}
}

// FlushSaveCmd waits out the given delay, forces any still-pending state
// to disk, and reports completion. Scheduled after every SaveScheduledMsg
// so the unsaved badge clears once the debounced write lands.
func FlushSaveCmd(store *storage.ThreadStore, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return SaveFlushedMsg{Err: store.Flush()}
	})
}

// ReloadStateCmd re-reads the state after an external change.
func ReloadStateCmd(store *storage.ThreadStore) tea.Cmd {
	return func() tea.Msg {
		return StateReloadedMsg{State: store.LoadState()}
	}
}

// ListenExternalCmd waits for the next external-change notification.
func ListenExternalCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ExternalChangeMsg{}
	}
}

// =============================================================================
// ACTION COMMANDS
// =============================================================================

// ExportThreadCmd writes the thread to disk with the given exporter.
func ExportThreadCmd(exp export.Exporter, th thread.Thread, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportToFile(th, exp, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// CopyReplyCmd puts text on the system clipboard.
func CopyReplyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardCopiedMsg{Err: clipboard.WriteAll(text)}
	}
}

// clearStatusCmd clears the transient status line after the delay.
// The sequence number lets newer statuses outlive older timers.
func clearStatusCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
