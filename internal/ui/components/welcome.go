// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component.
type Welcome struct {
	// Display info
	version    string
	mathEngine string
	backend    string

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version:    "dev",
		mathEngine: "symbols",
		backend:    "file",
		theme:      theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetMathEngine sets the math engine name shown in the info panel.
func (w *Welcome) SetMathEngine(name string) {
	w.mathEngine = name
}

// SetBackend sets the storage backend name shown in the info panel.
func (w *Welcome) SetBackend(name string) {
	w.backend = name
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	// Calculate box width - responsive to terminal width
	boxWidth := 58
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	var content string
	if height >= 20 {
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderSystemInfo()
		content += "\n\n" + w.renderPressKey()
	} else {
		content = w.renderLogoCompact()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderSystemInfo()
		content += "\n" + w.renderPressKey()
		verticalPadding = 0
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Indigo).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Align top rather than cutting the top of the box when tight
	vAlign := lipgloss.Center
	if boxHeight >= height {
		vAlign = lipgloss.Top
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, vAlign,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo.
func (w Welcome) renderLogo() string {
	logo := `                _   _     _        _
 _ __ ___  __ _| |_| |__ | |_ _  _| |_ ___  _ _
| '  \ .  \/ .  |  _|    \|  _| || |  _/ . \| '_|
|_|_|_|_|_|\___,|\__|_||_|\__|\___|\__\___/|_|`

	return lipgloss.NewStyle().
		Foreground(styles.Indigo).
		Bold(true).
		Render(logo)
}

// renderLogoCompact renders a compact text logo for small terminals.
func (w Welcome) renderLogoCompact() string {
	return lipgloss.NewStyle().
		Foreground(styles.Indigo).
		Bold(true).
		Render("[ mathtutor ]")
}

// renderVersion renders the version line.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("v" + w.version + " - terminal math tutoring")
}

// renderSystemInfo renders the engine and storage info lines.
func (w Welcome) renderSystemInfo() string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.Teal)

	lines := []string{
		labelStyle.Render("Math engine: ") + valueStyle.Render(w.mathEngine),
		labelStyle.Render("Storage:     ") + valueStyle.Render(w.backend),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderPressKey renders the call to action.
func (w Welcome) renderPressKey() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Render("Type a math question and press Enter")
}
