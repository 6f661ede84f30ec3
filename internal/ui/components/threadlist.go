// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for mathtutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
	"github.com/jeranaias/mathtutor-tui/internal/util"
)

// =============================================================================
// THREAD LIST COMPONENT - Sidebar listing saved threads
// =============================================================================

// ThreadList renders the sidebar of saved threads, most recent first.
type ThreadList struct {
	Threads  []thread.Thread // Already in display order
	Selected int             // Index of the highlighted thread
	Width    int
	Height   int

	theme *styles.Theme
}

// NewThreadList creates a new thread list.
func NewThreadList(theme *styles.Theme) *ThreadList {
	return &ThreadList{
		Width:  28,
		Height: 20,
		theme:  theme,
	}
}

// SetThreads replaces the displayed threads. Callers pass the store's
// canonical ordering so the list stays stable across saves.
func (tl *ThreadList) SetThreads(threads []thread.Thread) {
	tl.Threads = threads
	if tl.Selected >= len(threads) {
		tl.Selected = len(threads) - 1
	}
	if tl.Selected < 0 {
		tl.Selected = 0
	}
}

// SetSize updates the sidebar dimensions.
func (tl *ThreadList) SetSize(width, height int) {
	tl.Width = width
	tl.Height = height
}

// MoveUp moves the selection up one thread.
func (tl *ThreadList) MoveUp() {
	if tl.Selected > 0 {
		tl.Selected--
	}
}

// MoveDown moves the selection down one thread.
func (tl *ThreadList) MoveDown() {
	if tl.Selected < len(tl.Threads)-1 {
		tl.Selected++
	}
}

// SelectedThread returns the highlighted thread, if any.
func (tl *ThreadList) SelectedThread() (thread.Thread, bool) {
	if tl.Selected < 0 || tl.Selected >= len(tl.Threads) {
		return thread.Thread{}, false
	}
	return tl.Threads[tl.Selected], true
}

// SelectByID moves the selection to the thread with the given ID.
func (tl *ThreadList) SelectByID(id string) {
	for i, th := range tl.Threads {
		if th.ID == id {
			tl.Selected = i
			return
		}
	}
}

// View renders the thread list sidebar.
func (tl *ThreadList) View() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true).
		Padding(0, 1)
	header := headerStyle.Render("Threads (" + util.IntToStr(len(tl.Threads)) + ")")

	if len(tl.Threads) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Padding(1, 1)
		body := emptyStyle.Render("No saved threads")
		return tl.container(lipgloss.JoinVertical(lipgloss.Left, header, body))
	}

	// Each entry takes two rows (title + meta) plus the header row
	visibleRows := (tl.Height - 2) / 2
	if visibleRows < 1 {
		visibleRows = 1
	}
	start := 0
	if tl.Selected >= visibleRows {
		start = tl.Selected - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(tl.Threads) {
		end = len(tl.Threads)
	}

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, tl.renderEntry(tl.Threads[i], i == tl.Selected))
	}

	return tl.container(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{header}, rows...)...))
}

// renderEntry renders a single thread row with title and relative time.
func (tl *ThreadList) renderEntry(th thread.Thread, selected bool) string {
	innerWidth := tl.Width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	title := th.Title
	titleRunes := []rune(title)
	if len(titleRunes) > innerWidth {
		title = string(titleRunes[:innerWidth-3]) + "..."
	}

	meta := formatRelative(th.UpdatedAt) + " * " +
		util.IntToStr(th.MessageCount()) + " msgs"
	metaRunes := []rune(meta)
	if len(metaRunes) > innerWidth {
		meta = string(metaRunes[:innerWidth])
	}

	titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	rowStyle := lipgloss.NewStyle().Padding(0, 1).Width(tl.Width - 2)

	if selected {
		titleStyle = titleStyle.Foreground(styles.Indigo).Bold(true)
		rowStyle = rowStyle.
			Background(styles.SurfaceDim).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(styles.Indigo)
	}

	return rowStyle.Render(
		titleStyle.Render(title) + "\n" + metaStyle.Render(meta))
}

// container wraps the list content in the sidebar border.
func (tl *ThreadList) container(content string) string {
	// Pad to full height so the border stays stable
	lines := strings.Count(content, "\n") + 1
	for lines < tl.Height-2 {
		content += "\n"
		lines++
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Width(tl.Width).
		Height(tl.Height).
		Render(content)
}
