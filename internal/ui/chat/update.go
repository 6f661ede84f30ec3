// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathtutor-tui/internal/export"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
	"github.com/jeranaias/mathtutor-tui/internal/ui/components"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles incoming Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ReplyChunkMsg:
		return m.handleReplyChunk(msg)
	case ReplyDoneMsg:
		return m.handleReplyDone(msg)
	case ReplyErrorMsg:
		return m.handleReplyError(msg)
	case SaveScheduledMsg:
		m.dirty = true
		m.statusBar.SetDirty(true)
		// Check back just past the debounce window; by then the write has
		// normally landed and Flush is a no-op that confirms it.
		return m, FlushSaveCmd(m.store, m.store.Window()+50*time.Millisecond)
	case SaveFlushedMsg:
		m.dirty = false
		m.statusBar.SetDirty(false)
		if msg.Err != nil {
			return m, m.setStatus("save failed: " + msg.Err.Error())
		}
		return m, nil
	case ExternalChangeMsg:
		cmds := []tea.Cmd{ReloadStateCmd(m.store)}
		if m.extCh != nil {
			cmds = append(cmds, ListenExternalCmd(m.extCh))
		}
		return m, tea.Batch(cmds...)
	case StateReloadedMsg:
		return m.handleStateReloaded(msg)
	case ExportDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus("export failed: " + msg.Err.Error())
		}
		return m, m.setStatus("exported to " + msg.Path)
	case ClipboardCopiedMsg:
		if msg.Err != nil {
			return m, m.setStatus("copy failed: " + msg.Err.Error())
		}
		return m, m.setStatus("copied reply to clipboard")
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// updateComponents forwards messages to child components.
func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.thinking, cmd = m.thinking.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)

	sidebarWidth := 0
	if m.sidebarVisible() {
		sidebarWidth = m.cfg.UI.SidebarWidth
	}

	// Header row, input row, status row
	contentHeight := msg.Height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}

	m.viewport.Width = msg.Width - sidebarWidth - 2
	m.viewport.Height = contentHeight
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.input.Width = msg.Width - 6

	m.rebuildBlockRenderer()
	m.refreshViewport()
	return m, nil
}

// sidebarVisible reports whether the sidebar fits and is toggled on.
func (m *Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= 80
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, m.shutdown()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.state == StateStreaming && m.streamCancel != nil {
			m.streamCancel()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitQuestion()

	case key.Matches(msg, m.keyMap.NewThread):
		m.newThread()
		return m, ScheduleSaveCmd(m.store, m.st)

	case key.Matches(msg, m.keyMap.DeleteThread):
		m.deleteCurrentThread()
		return m, ScheduleSaveCmd(m.store, m.st)

	case key.Matches(msg, m.keyMap.NextThread):
		m.selectThreadOffset(1)
		return m, ScheduleSaveCmd(m.store, m.st)

	case key.Matches(msg, m.keyMap.PrevThread):
		m.selectThreadOffset(-1)
		return m, ScheduleSaveCmd(m.store, m.st)

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.showSidebar = !m.showSidebar
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case key.Matches(msg, m.keyMap.Export):
		return m.exportCurrent()

	case key.Matches(msg, m.keyMap.CopyReply):
		return m.copyLastReply()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	return m.updateComponents(msg)
}

// shutdown flushes pending saves and quits.
func (m *Model) shutdown() tea.Cmd {
	if m.streamCancel != nil {
		m.streamCancel()
	}
	_ = m.store.Flush()
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return tea.Quit
}

// =============================================================================
// QUESTION SUBMISSION
// =============================================================================

func (m *Model) submitQuestion() (tea.Model, tea.Cmd) {
	if m.state == StateStreaming {
		return m, nil
	}

	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}
	m.input.Reset()

	th, ok := m.currentThread()
	if !ok {
		th = thread.New()
	}

	// Title a fresh thread after its first question
	if th.MessageCount() == 0 {
		userMsg := thread.NewMessage(thread.RoleUser, question)
		th = thread.Append(th, userMsg)
		th = thread.Rename(th, userMsg.Preview(40))
	} else {
		th = thread.Append(th, thread.NewMessage(thread.RoleUser, question))
	}

	history := th.Messages

	// Seed an empty assistant message that streaming fills in
	th = thread.Append(th, thread.NewMessage(thread.RoleAssistant, ""))
	m.putThread(th)

	m.state = StateStreaming
	m.streamBuf.Reset()
	m.streamStart = time.Now()
	m.streamCh = make(chan tutor.StreamChunk, 16)

	ctx, cancel := context.WithCancel(context.Background())
	m.streamCancel = cancel

	m.refreshSidebar()
	m.refreshViewport()
	m.statusBar.SetStatus(components.StatusThinking)

	return m, tea.Batch(
		m.thinking.Start(),
		StartReplyCmd(ctx, m.tutor, history, question, th.ID, m.streamCh),
		ListenReplyCmd(th.ID, m.streamStart, m.streamCh),
		ScheduleSaveCmd(m.store, m.st),
	)
}

// =============================================================================
// REPLY STREAM HANDLING
// =============================================================================

func (m *Model) handleReplyChunk(msg ReplyChunkMsg) (tea.Model, tea.Cmd) {
	if msg.ThreadID != m.st.CurrentThreadID {
		// Reply for a thread the user already left; keep draining
		return m, ListenReplyCmd(msg.ThreadID, m.streamStart, m.streamCh)
	}

	m.streamBuf.WriteString(msg.Content)
	m.setStreamingContent(m.streamBuf.String())
	m.refreshViewport()

	return m, ListenReplyCmd(msg.ThreadID, m.streamStart, m.streamCh)
}

func (m *Model) handleReplyDone(msg ReplyDoneMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.thinking.Stop()
	m.streamCancel = nil
	m.statusBar.SetStatus(components.StatusReady)

	m.setStreamingContent(m.streamBuf.String())
	m.refreshSidebar()
	m.refreshViewport()

	return m, ScheduleSaveCmd(m.store, m.st)
}

func (m *Model) handleReplyError(msg ReplyErrorMsg) (tea.Model, tea.Cmd) {
	m.state = StateError
	m.thinking.Stop()
	m.streamCancel = nil
	m.lastErr = msg.Err
	m.statusBar.SetStatus(components.StatusError)

	// Keep whatever partial content arrived
	m.setStreamingContent(m.streamBuf.String())
	m.refreshViewport()

	return m, tea.Batch(
		ScheduleSaveCmd(m.store, m.st),
		m.setStatus("reply failed: "+msg.Err.Error()),
	)
}

// setStreamingContent replaces the trailing assistant message's content.
func (m *Model) setStreamingContent(content string) {
	th, ok := m.currentThread()
	if !ok || th.MessageCount() == 0 {
		return
	}

	msgs := make([]thread.Message, len(th.Messages))
	copy(msgs, th.Messages)
	last := &msgs[len(msgs)-1]
	if last.Role != thread.RoleAssistant {
		return
	}
	last.Content = content

	th.Messages = msgs
	th.UpdatedAt = time.Now().UTC()
	m.putThread(th)
}

// =============================================================================
// EXTERNAL STATE CHANGES
// =============================================================================

func (m *Model) handleStateReloaded(msg StateReloadedMsg) (tea.Model, tea.Cmd) {
	// Last write wins: adopt the on-disk state unless a reply is mid-stream
	if m.state == StateStreaming {
		return m, nil
	}
	m.st = msg.State
	m.refreshSidebar()
	m.refreshViewport()
	return m, m.setStatus("reloaded threads from disk")
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m *Model) exportCurrent() (tea.Model, tea.Cmd) {
	th, ok := m.currentThread()
	if !ok || th.MessageCount() == 0 {
		return m, m.setStatus("nothing to export")
	}

	opts := export.DefaultOptions()
	if m.cfg.Export.Dir != "" {
		opts.OutputDir = m.cfg.Export.Dir
	}

	exp, err := export.ForFormat(m.cfg.Export.Format, opts)
	if err != nil {
		return m, m.setStatus("export failed: " + err.Error())
	}
	return m, ExportThreadCmd(exp, th, opts)
}

func (m *Model) copyLastReply() (tea.Model, tea.Cmd) {
	th, ok := m.currentThread()
	if !ok {
		return m, m.setStatus("no thread selected")
	}
	for i := len(th.Messages) - 1; i >= 0; i-- {
		if th.Messages[i].Role == thread.RoleAssistant && th.Messages[i].Content != "" {
			return m, CopyReplyCmd(th.Messages[i].Content)
		}
	}
	return m, m.setStatus("no reply to copy")
}
