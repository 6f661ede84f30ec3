// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A handful of load-bearing styles must render without panicking.
	_ = theme.UserBubble.Render("hi")
	_ = theme.TutorBubble.Render("hello")
	_ = theme.StatusBar.Render("ready")
	_ = theme.ErrorBox.Render("boom")
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestStatusRenderers(t *testing.T) {
	if out := RenderSuccess("saved"); !strings.Contains(out, "[OK]") || !strings.Contains(out, "saved") {
		t.Errorf("RenderSuccess = %q", out)
	}
	if out := RenderError("failed"); !strings.Contains(out, "[X]") {
		t.Errorf("RenderError = %q", out)
	}
	if out := RenderWarning("careful"); !strings.Contains(out, "[!]") {
		t.Errorf("RenderWarning = %q", out)
	}
	if out := RenderInfo("note"); !strings.Contains(out, "[i]") {
		t.Errorf("RenderInfo = %q", out)
	}
}
