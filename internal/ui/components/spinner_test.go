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
// SPINNER TESTS
// =============================================================================

func TestSpinnerInactiveRendersNothing(t *testing.T) {
	s := NewSpinner()
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner()

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}
	if s.View() == "" {
		t.Error("active spinner should render")
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
}

func TestSpinnerShowsMessage(t *testing.T) {
	s := NewSpinner()
	s.SetMessage("Typesetting")
	s.Start()

	if !strings.Contains(s.View(), "Typesetting") {
		t.Error("spinner should show its message")
	}
}

func TestSpinnerDetail(t *testing.T) {
	s := NewSpinner()
	s.SetDetail("fallback engine")
	s.Start()

	if !strings.Contains(s.View(), "fallback engine") {
		t.Error("spinner should show detail text")
	}
}

func TestSpinnerElapsed(t *testing.T) {
	s := NewSpinner()
	if s.GetElapsed() != 0 {
		t.Error("elapsed should be zero before Start")
	}

	s.Start()
	time.Sleep(10 * time.Millisecond)
	if s.GetElapsed() <= 0 {
		t.Error("elapsed should grow after Start")
	}
}

// =============================================================================
// THINKING INDICATOR TESTS
// =============================================================================

func TestThinkingIndicator(t *testing.T) {
	ti := NewThinkingIndicator()

	ti.Start()
	if !ti.IsActive() {
		t.Error("indicator should be active after Start")
	}
	if !strings.Contains(ti.View(), "Thinking") {
		t.Error("indicator should show Thinking message")
	}

	ti.Stop()
	if ti.IsActive() {
		t.Error("indicator should be inactive after Stop")
	}
	if ti.View() != "" {
		t.Error("stopped indicator should render nothing")
	}
}
