// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// ContentRenderer turns raw message text into display text. The chat model
// plugs in the repair + math typesetting pipeline here; a nil renderer
// shows content as stored.
type ContentRenderer func(string) string

// MessageBubble represents a styled message bubble.
type MessageBubble struct {
	Message       thread.Message
	Width         int
	ShowTimestamp bool
	Streaming     bool

	// TutorRender, when set, renders assistant content instead of the
	// default renderer. The chat model uses it for the full markdown
	// pipeline while user text stays on the lighter inline one.
	TutorRender ContentRenderer

	render ContentRenderer
	theme  *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg thread.Message, theme *styles.Theme, render ContentRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		render:        render,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Role == thread.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderTutorBubble()
}

// displayContent runs the content renderer, falling back to the raw text.
func (b *MessageBubble) displayContent() string {
	content := b.Message.Content
	r := b.render
	if b.Message.Role == thread.RoleAssistant && b.TutorRender != nil {
		r = b.TutorRender
	}
	if r != nil {
		content = r(content)
	}
	return content
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.displayContent()
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrappedContent := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrappedContent)+4, b.Width-8)

	bubbleStyle := b.theme.UserBubble.
		UnsetMarginLeft().
		Width(contentWidth)
	bubble := bubbleStyle.Render(wrappedContent)

	// Role indicator - subtle, not bold
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render("you")

	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			header += " " + ts
		}
	}

	// Right-align the bubble with a left margin
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// TUTOR BUBBLE - Indigo tones, left-aligned
// ==========================================================================

func (b *MessageBubble) renderTutorBubble() string {
	content := b.displayContent()

	// Show cursor for streaming messages
	if b.Streaming {
		content += b.renderStreamingCursor()
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrappedContent := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrappedContent)+4, b.Width-8)

	bubbleStyle := b.theme.TutorBubble.Width(contentWidth)
	bubble := bubbleStyle.Render(wrappedContent)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render("tutor")

	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			header += " " + ts
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// HELPER METHODS
// ==========================================================================

// renderTimestamp renders a dimmed timestamp.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.CreatedAt
	if ts.IsZero() {
		return ""
	}

	timestampStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	return timestampStyle.Render(formatStamp(ts))
}

// renderStreamingCursor renders the streaming cursor animation.
func (b *MessageBubble) renderStreamingCursor() string {
	cursorStyle := lipgloss.NewStyle().
		Foreground(styles.Indigo).
		Blink(true)
	return cursorStyle.Render("_")
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a thread's messages as a vertical bubble stack.
type MessageList struct {
	Messages       []thread.Message
	Width          int
	ShowTimestamps bool
	StreamingLast  bool

	// TutorRender overrides the renderer for assistant messages.
	TutorRender ContentRenderer

	render ContentRenderer
	theme  *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme, render ContentRenderer) *MessageList {
	return &MessageList{
		Messages:       []thread.Message{},
		Width:          80,
		ShowTimestamps: true,
		render:         render,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []thread.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)

		return emptyStyle.Render("No messages yet. Ask a math question to get started!")
	}

	var bubbles []string
	for i, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme, ml.render)
		bubble.TutorRender = ml.TutorRender
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.Streaming = ml.StreamingLast &&
			i == len(ml.Messages)-1 &&
			msg.Role == thread.RoleAssistant

		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
