// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/mathrender"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/textpipe"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
	"github.com/jeranaias/mathtutor-tui/internal/ui/components"
	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateStreaming              // Receiving a streamed reply
	StateError                  // Showing an error
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Configuration
	cfg *config.Config

	// Persistence
	store *storage.ThreadStore
	st    thread.State
	dirty bool

	// Tutor backend
	tutor tutor.Tutor

	// Reply streaming
	streamCh     chan tutor.StreamChunk
	streamCancel context.CancelFunc
	streamStart  time.Time
	streamBuf    strings.Builder

	// External change notifications
	extCh   chan struct{}
	watcher *storage.StateWatcher

	// Math typesetting
	inline *mathrender.InlineRenderer
	block  *mathrender.BlockRenderer

	// UI Components
	viewport  viewport.Model
	input     textinput.Model
	sidebar   *components.ThreadList
	statusBar *components.StatusBar
	thinking  components.ThinkingIndicator
	welcome   components.Welcome

	// View toggles
	showSidebar bool
	showHelp    bool

	// Key bindings
	keyMap KeyMap

	// Transient status line
	statusMsg string
	statusSeq int

	// Error state
	lastErr error
}

// New creates the chat model.
func New(cfg *config.Config, store *storage.ThreadStore, t tutor.Tutor) *Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask a math question..."
	input.CharLimit = 2000
	input.Focus()

	vp := viewport.New(80, 20)

	var engine mathrender.Engine
	if cfg.Render.MathEngine == "symbols" {
		engine = mathrender.NewSymbolEngine()
	}

	welcome := components.NewWelcome(theme)
	welcome.SetMathEngine(cfg.Render.MathEngine)
	welcome.SetBackend(cfg.Storage.Backend)

	m := &Model{
		state:       StateReady,
		theme:       theme,
		cfg:         cfg,
		store:       store,
		st:          store.LoadState(),
		tutor:       t,
		inline:      mathrender.NewInlineRenderer(engine),
		viewport:    vp,
		input:       input,
		sidebar:     components.NewThreadList(theme),
		statusBar:   components.NewStatusBar(theme),
		thinking:    components.NewThinkingIndicator(),
		welcome:     welcome,
		showSidebar: true,
		keyMap:      DefaultKeyMap(),
	}

	m.rebuildBlockRenderer()
	m.refreshSidebar()
	m.refreshViewport()
	return m
}

// rebuildBlockRenderer sizes the markdown pipeline to the viewport. A nil
// renderer (glamour init failure) falls back to the inline pipeline.
func (m *Model) rebuildBlockRenderer() {
	width := m.viewport.Width - 16
	if m.cfg.Render.WordWrap > 0 && m.cfg.Render.WordWrap < width {
		width = m.cfg.Render.WordWrap
	}
	if width < 20 {
		width = 20
	}

	var engine mathrender.Engine
	if m.cfg.Render.MathEngine == "symbols" {
		engine = mathrender.NewSymbolEngine()
	}

	block, err := mathrender.NewBlockRenderer(engine, width, m.cfg.Render.MarkdownStyle)
	if err != nil {
		m.block = nil
		return
	}
	m.block = block
}

// SetWatcher attaches an external-change watcher channel. The main program
// wires the storage.StateWatcher callback to this channel.
func (m *Model) SetWatcher(w *storage.StateWatcher, ch chan struct{}) {
	m.watcher = w
	m.extCh = ch
}

// Init starts background listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.extCh != nil {
		cmds = append(cmds, ListenExternalCmd(m.extCh))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// THREAD ACCESS
// =============================================================================

// currentThread returns the active thread, if any.
func (m *Model) currentThread() (thread.Thread, bool) {
	if m.st.CurrentThreadID == "" {
		return thread.Thread{}, false
	}
	th, ok := m.st.Threads[m.st.CurrentThreadID]
	return th, ok
}

// putThread stores an updated thread and keeps it current.
func (m *Model) putThread(th thread.Thread) {
	if m.st.Threads == nil {
		m.st.Threads = map[string]thread.Thread{}
	}
	m.st.Threads[th.ID] = th
	m.st.CurrentThreadID = th.ID
}

// newThread creates and selects a fresh thread.
func (m *Model) newThread() {
	th := thread.New()
	m.putThread(th)
	m.refreshSidebar()
	m.refreshViewport()
}

// deleteCurrentThread removes the active thread and selects the most
// recently updated remaining one.
func (m *Model) deleteCurrentThread() {
	if m.st.CurrentThreadID == "" {
		return
	}
	delete(m.st.Threads, m.st.CurrentThreadID)
	m.st.CurrentThreadID = ""
	if order := storage.CanonicalOrder(m.st); len(order) > 0 {
		m.st.CurrentThreadID = order[0]
	}
	m.refreshSidebar()
	m.refreshViewport()
}

// selectThreadOffset moves the current thread selection within the
// canonical ordering.
func (m *Model) selectThreadOffset(delta int) {
	order := storage.CanonicalOrder(m.st)
	if len(order) == 0 {
		return
	}
	idx := 0
	for i, id := range order {
		if id == m.st.CurrentThreadID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(order) {
		idx = len(order) - 1
	}
	m.st.CurrentThreadID = order[idx]
	m.refreshSidebar()
	m.refreshViewport()
}

// =============================================================================
// RENDERING PIPELINE
// =============================================================================

// renderContent repairs and typesets message text for display.
func (m *Model) renderContent(s string) string {
	s = textpipe.Clean(s)
	s = m.inline.Render(s)
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	return components.ParseCodeBlocks(s, width, m.cfg.Render.SyntaxTheme)
}

// renderTutorContent runs assistant text through the full markdown
// pipeline. Glamour handles code fences itself, so no ParseCodeBlocks here.
func (m *Model) renderTutorContent(s string) string {
	if m.block == nil {
		return m.renderContent(s)
	}
	return strings.TrimRight(m.block.Render(s), "\n")
}

// refreshSidebar syncs the thread list with the state. Titles may carry
// $-spans from the first question, so they get inline typesetting too.
func (m *Model) refreshSidebar() {
	threads := storage.SortedThreads(m.st)
	for i := range threads {
		threads[i].Title = m.inline.Render(threads[i].Title)
	}
	m.sidebar.SetThreads(threads)
	m.sidebar.SelectByID(m.st.CurrentThreadID)
}

// refreshViewport rebuilds the message view for the current thread.
func (m *Model) refreshViewport() {
	th, ok := m.currentThread()

	ml := components.NewMessageList(m.theme, m.renderContent)
	ml.TutorRender = m.renderTutorContent
	ml.SetWidth(m.viewport.Width)
	ml.ShowTimestamps = m.cfg.UI.ShowTimestamps
	ml.StreamingLast = m.state == StateStreaming
	if ok {
		ml.SetMessages(th.Messages)
	}

	m.viewport.SetContent(ml.View())
	m.viewport.GotoBottom()

	m.statusBar.SetThread(m.inline.Render(th.Title), th.MessageCount())
	m.statusBar.ThreadCount = len(m.st.Threads)
}

// =============================================================================
// STATUS LINE
// =============================================================================

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusSeq++
	return clearStatusCmd(m.statusSeq, 4*time.Second)
}
