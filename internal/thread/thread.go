// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import (
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Tutor"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one this layer accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Messages are immutable once created:
// nothing in this package mutates a Message after NewMessage returns.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        NewID("msg"),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Preview returns the first line of the message, truncated to maxRunes.
func (m Message) Preview(maxRunes int) string {
	line := m.Content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return line
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// =============================================================================
// THREAD TYPE
// =============================================================================

// DefaultTitle is the title given to a freshly created thread.
const DefaultTitle = "New thread"

// Thread holds one conversation. Threads are values: every mutation helper
// returns a new Thread and leaves its input untouched, so a caller holding
// an old value never sees messages appear under it. Messages are append-only
// and stay in insertion (chronological) order.
type Thread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty thread with the default title.
func New() Thread {
	now := time.Now()
	return Thread{
		ID:        NewID("thr"),
		Title:     DefaultTitle,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append returns a copy of t with msg appended and UpdatedAt set to the
// message's timestamp. Callers supply monotonically increasing message
// timestamps; this layer does not re-check them.
func Append(t Thread, msg Message) Thread {
	msgs := make([]Message, len(t.Messages), len(t.Messages)+1)
	copy(msgs, t.Messages)
	msgs = append(msgs, msg)

	t.Messages = msgs
	t.UpdatedAt = msg.CreatedAt
	return t
}

// Rename returns a copy of t with the new title and a refreshed UpdatedAt.
func Rename(t Thread, title string) Thread {
	msgs := make([]Message, len(t.Messages))
	copy(msgs, t.Messages)

	t.Messages = msgs
	t.Title = title
	t.UpdatedAt = time.Now()
	return t
}

// LastMessage returns the most recent message and true, or false if empty.
func (t Thread) LastMessage() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Preview returns a short preview of the thread for list display.
func (t Thread) Preview(maxRunes int) string {
	for _, m := range t.Messages {
		if m.Role == RoleUser && m.Content != "" {
			return m.Preview(maxRunes)
		}
	}
	return "Empty thread"
}

// MessageCount returns the number of messages.
func (t Thread) MessageCount() int {
	return len(t.Messages)
}
