// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	"strings"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/util"
)

// =============================================================================
// TEXT LAYOUT HELPERS
// =============================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]

		for _, word := range words[1:] {
			if util.RuneLen(currentLine)+1+util.RuneLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}

		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the display width of the widest line.
// UNICODE: Uses cell width, not byte length, so CJK and math symbols
// measure correctly.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// TIME FORMATTING
// =============================================================================

// formatClock formats a time as "3:04 PM".
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// formatStamp formats a timestamp relative to now: time only for today,
// date and time otherwise.
func formatStamp(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return formatClock(t)
	}
	return t.Format("Jan 2") + ", " + formatClock(t)
}

// formatRelative renders a short "how long ago" label for thread lists.
func formatRelative(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return util.IntToStr(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return util.IntToStr(int(d.Hours())) + "h ago"
	case d < 7*24*time.Hour:
		return util.IntToStr(int(d.Hours()/24)) + "d ago"
	default:
		return t.Format("Jan 2")
	}
}
