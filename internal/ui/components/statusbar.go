// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
	"github.com/jeranaias/mathtutor-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusSaving
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusSaving:
		return "Saving..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusSaving:
		return "~"
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	ThreadTitle   string // Current thread title
	ThreadCount   int    // Total threads in the store
	MessageCount  int    // Messages in the current thread
	MathEngine    string // Active math engine name, "" hides the badge
	Status        Status // Current status
	Dirty         bool   // True when a debounced save is pending
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetThread updates the thread title and message count display.
func (s *StatusBar) SetThread(title string, messages int) {
	s.ThreadTitle = title
	s.MessageCount = messages
}

// SetDirty marks whether unsaved changes are pending.
func (s *StatusBar) SetDirty(dirty bool) {
	s.Dirty = dirty
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [*|engine] Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	parts = append(parts, s.renderSaveBadge(true))

	if s.MathEngine != "" {
		engineStyle := lipgloss.NewStyle().Foreground(styles.MathFg)
		parts = append(parts, engineStyle.Render(string([]rune(s.MathEngine)[0])))
	}

	modeSection := "[" + strings.Join(parts, "|") + "]"

	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := modeSection + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: saved | title (N msgs) | engine | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	parts = append(parts, s.renderSaveBadge(false))

	if s.ThreadTitle != "" {
		title := s.ThreadTitle
		// Rune-based truncation to handle Unicode correctly
		titleRunes := []rune(title)
		if len(titleRunes) > 20 {
			title = string(titleRunes[:17]) + "..."
		}
		titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
		parts = append(parts, titleStyle.Render(title)+
			lipgloss.NewStyle().Foreground(styles.TextMuted).
				Render(" ("+util.IntToStr(s.MessageCount)+")"))
	}

	if s.MathEngine != "" {
		engineStyle := lipgloss.NewStyle().Foreground(styles.MathFg)
		parts = append(parts, engineStyle.Render("math:"+s.MathEngine))
	}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Padding(0, 1).
		Render(result)
}

// viewWide renders the full status bar with shortcuts.
// Format: saved | title (N msgs) | engine | Status .... shortcuts
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	left := []string{}

	left = append(left, s.renderSaveBadge(false))

	if s.ThreadTitle != "" {
		titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
		left = append(left, titleStyle.Render(s.ThreadTitle)+
			lipgloss.NewStyle().Foreground(styles.TextMuted).
				Render(" ("+util.IntToStr(s.MessageCount)+" msgs)"))
	}

	if s.ThreadCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		left = append(left, countStyle.Render(util.IntToStr(s.ThreadCount)+" threads"))
	}

	if s.MathEngine != "" {
		engineStyle := lipgloss.NewStyle().Foreground(styles.MathFg)
		left = append(left, engineStyle.Render("math:"+s.MathEngine))
	}

	statusStyle := s.getStatusStyle()
	left = append(left, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))

	leftText := strings.Join(left, separator)

	var rightText string
	if s.ShowShortcuts {
		keyStyle := lipgloss.NewStyle().Foreground(styles.Teal)
		descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		rightText = keyStyle.Render("^N") + descStyle.Render(" new  ") +
			keyStyle.Render("^E") + descStyle.Render(" export  ") +
			keyStyle.Render("^C") + descStyle.Render(" quit")
	}

	gap := s.Width - lipgloss.Width(leftText) - lipgloss.Width(rightText) - 2
	if gap < 1 {
		gap = 1
	}

	result := leftText + strings.Repeat(" ", gap) + rightText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Padding(0, 1).
		Render(result)
}

// =============================================================================
// HELPERS
// =============================================================================

// renderSaveBadge renders the saved/unsaved indicator.
// ACCESSIBILITY: High contrast colors plus a shape for colorblind users
func (s *StatusBar) renderSaveBadge(compact bool) string {
	if s.Dirty {
		style := lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
		if compact {
			return style.Render("*")
		}
		return style.Render("* unsaved")
	}
	style := lipgloss.NewStyle().Foreground(styles.SuccessHighContrast)
	if compact {
		return style.Render(styles.StatusIndicators.Success)
	}
	return style.Render(styles.StatusIndicators.Success + " saved")
}

// getStatusStyle returns the style for the current status.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast)
	case StatusThinking, StatusSaving:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
