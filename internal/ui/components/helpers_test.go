// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits on one line", "hello world", 20, "hello world"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width returns input", "hello world", 0, "hello world"},
		{"preserves existing newlines", "a\nb", 10, "a\nb"},
		{"empty string", "", 10, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wordWrap(tc.input, tc.width)
			if got != tc.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
			}
		})
	}
}

func TestWordWrapNeverExceedsWidth(t *testing.T) {
	got := wordWrap("the quadratic formula gives both roots of the equation", 12)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 12 {
			t.Errorf("line %q exceeds width 12", line)
		}
	}
}

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"abc", 3},
		{"abc\nabcdef\nab", 6},
		{"", 0},
	}

	for _, tc := range tests {
		got := maxLineWidth(tc.input)
		if got != tc.want {
			t.Errorf("maxLineWidth(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

// UNICODE: wide characters count as two cells
func TestMaxLineWidthWideRunes(t *testing.T) {
	got := maxLineWidth("数学")
	if got != 4 {
		t.Errorf("maxLineWidth(wide) = %d, want 4", got)
	}
}

func TestMinInt(t *testing.T) {
	if minInt(3, 5) != 3 {
		t.Error("minInt(3, 5) should be 3")
	}
	if minInt(5, 3) != 3 {
		t.Error("minInt(5, 3) should be 3")
	}
	if minInt(-1, 0) != -1 {
		t.Error("minInt(-1, 0) should be -1")
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 3, 1, 15, 4, 0, 0, time.Local)
	if got := formatClock(ts); got != "3:04 PM" {
		t.Errorf("formatClock = %q, want %q", got, "3:04 PM")
	}
}

func TestFormatStamp(t *testing.T) {
	// Today's messages show time only
	today := time.Now()
	if got := formatStamp(today); strings.Contains(got, ",") {
		t.Errorf("formatStamp(today) = %q, should be time only", got)
	}

	// Older messages include the date
	old := time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local)
	got := formatStamp(old)
	if !strings.HasPrefix(got, "Jan 15") {
		t.Errorf("formatStamp(old) = %q, want Jan 15 prefix", got)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatRelative(tc.t); got != tc.want {
				t.Errorf("formatRelative = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatRelativeOldDate(t *testing.T) {
	old := time.Date(2023, 6, 9, 12, 0, 0, 0, time.Local)
	if got := formatRelative(old); got != "Jun 9" {
		t.Errorf("formatRelative(old) = %q, want %q", got, "Jun 9")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{90 * time.Second, "1m 30s"},
	}

	for _, tc := range tests {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
