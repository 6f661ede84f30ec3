// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the mathtutor TUI
application.

This package contains a collection of styled components built on top of the
Bubble Tea and Lip Gloss libraries. Each component is designed to be visually
consistent with the mathtutor design language.

# Core Components

## Display Components

MessageBubble (message.go) - Styled chat bubbles for student and tutor messages.
MessageList (message.go) - Vertical stack of bubbles for a whole thread.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.
ThreadList (threadlist.go) - Sidebar listing saved threads, most recent first.
StatusBar (statusbar.go) - Bottom status bar with save state and shortcuts.

## Progress and Feedback

Spinner (spinner.go) - Animated ASCII spinner with elapsed time.
ThinkingIndicator (spinner.go) - "Thinking..." state while the tutor replies.

## Specialized Views

Welcome (welcome.go) - First-run welcome screen.

# Key Types

## Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	bar.SetThread("Fractions homework", 4)
	view := bar.View()

## Content Rendering

MessageBubble takes a ContentRenderer so the chat model can plug in the
text repair and math typesetting pipeline without the component knowing
about it:

	bubble := components.NewMessageBubble(msg, theme, func(s string) string {
		return renderer.Render(textpipe.Clean(s))
	})

# Helper Functions

The package includes shared helper functions in helpers.go:
  - wordWrap() - Word wrapping with Unicode-aware widths
  - formatStamp() - Timestamp formatting, time only for same-day messages
  - formatRelative() - Relative time strings for the thread sidebar
*/
package components
