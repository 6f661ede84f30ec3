// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// First run: no threads at all shows the welcome screen
	if len(m.st.Threads) == 0 && m.state == StateReady {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.welcome.View(),
			m.renderInput(),
			m.statusBar.View(),
		)
	}

	sections := []string{
		m.renderHeader(),
		m.renderBody(),
	}

	if m.state == StateStreaming {
		sections = append(sections, m.renderThinking())
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	if m.statusMsg != "" {
		sections = append(sections, m.renderStatusLine())
	}

	sections = append(sections, m.renderInput(), m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// SECTIONS
// =============================================================================

// renderHeader renders the top bar with the app name and thread title.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("mathtutor")

	var subtitle string
	if th, ok := m.currentThread(); ok {
		subtitle = m.theme.HeaderSubtitle.Render(th.Title)
	}

	line := title
	if subtitle != "" {
		line += "  " + subtitle
	}

	return m.theme.Header.Width(m.width).Render(line)
}

// renderBody renders the sidebar and the message viewport side by side.
func (m *Model) renderBody() string {
	if !m.sidebarVisible() {
		return m.viewport.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(),
		m.viewport.View(),
	)
}

// renderThinking renders the animated thinking line.
func (m *Model) renderThinking() string {
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(m.thinking.View())
}

// renderInput renders the question input box.
func (m *Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("? ")
	return m.theme.InputContainer.
		Width(m.width - 2).
		Render(prompt + m.input.View())
}

// renderStatusLine renders the transient status message.
func (m *Model) renderStatusLine() string {
	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		PaddingLeft(2)
	if strings.HasPrefix(m.statusMsg, "reply failed") ||
		strings.HasPrefix(m.statusMsg, "export failed") ||
		strings.HasPrefix(m.statusMsg, "save failed") ||
		strings.HasPrefix(m.statusMsg, "copy failed") {
		return styles.RenderError(m.statusMsg)
	}
	return style.Render(m.statusMsg)
}

// renderHelp renders the full keyboard shortcut reference.
func (m *Model) renderHelp() string {
	keyStyle := m.theme.ShortcutKey
	descStyle := m.theme.ShortcutDesc

	var rows []string
	for _, group := range m.keyMap.FullHelp() {
		var parts []string
		for _, binding := range group {
			h := binding.Help()
			parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
		}
		rows = append(rows, strings.Join(parts, "   "))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 2).
		Render(strings.Join(rows, "\n"))
}
