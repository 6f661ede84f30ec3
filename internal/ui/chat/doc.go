// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view component for the TUI.

The chat view is the main screen of mathtutor: a thread sidebar, a message
viewport, a question input, and a status bar, wired together in a Bubble
Tea model. It talks to three collaborators:

  - tutor.Tutor answers questions, streamed chunk by chunk
  - storage.ThreadStore persists threads with debounced saves
  - mathrender and textpipe repair and typeset message content

# Message Flow

Submitting a question appends the user message plus an empty assistant
message to the current thread, then starts two commands: one feeds the
tutor's stream into a channel, the other pulls chunks off the channel and
delivers them as ReplyChunkMsg values. Each chunk rewrites the trailing
assistant message and re-renders the viewport. ReplyDoneMsg closes the
cycle and schedules a debounced save.

# Persistence

Every mutation of the thread state schedules a debounced save through the
store; quitting flushes whatever is pending. When a storage.StateWatcher
is attached, edits made by another process arrive as ExternalChangeMsg and
the on-disk state replaces the in-memory one unless a reply is mid-stream.

# Files

model.go    - Model struct, thread accessors, render pipeline
update.go   - Update loop, key handling, streaming state machine
view.go     - Layout and section rendering
commands.go - Bubble Tea commands for tutor, store, export, clipboard
messages.go - Message type definitions
keys.go     - Key bindings and help text
*/
package chat
