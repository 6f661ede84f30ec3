// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.Default()
	store := storage.NewThreadStore(storage.NewMemKV())
	t.Cleanup(func() { _ = store.Close() })

	m := New(cfg, store, &tutor.LocalTutor{})
	m.width = 100
	m.height = 30
	m.viewport.Width = 80
	m.viewport.Height = 20
	return m
}

// =============================================================================
// THREAD MANAGEMENT TESTS
// =============================================================================

func TestNewThreadBecomesCurrent(t *testing.T) {
	m := testModel(t)

	m.newThread()
	if m.st.CurrentThreadID == "" {
		t.Fatal("new thread should become current")
	}
	if len(m.st.Threads) != 1 {
		t.Fatalf("thread count = %d, want 1", len(m.st.Threads))
	}
}

func TestDeleteCurrentThreadSelectsMostRecent(t *testing.T) {
	m := testModel(t)

	older := thread.New()
	older.UpdatedAt = time.Now().Add(-time.Hour)
	m.putThread(older)

	newest := thread.New()
	newest.UpdatedAt = time.Now()
	m.putThread(newest)

	victim := thread.New()
	victim.UpdatedAt = time.Now().Add(-2 * time.Hour)
	m.putThread(victim)

	m.deleteCurrentThread()
	if _, exists := m.st.Threads[victim.ID]; exists {
		t.Error("deleted thread should be gone")
	}
	if m.st.CurrentThreadID != newest.ID {
		t.Errorf("current = %q, want most recent %q", m.st.CurrentThreadID, newest.ID)
	}
}

func TestDeleteLastThreadClearsCurrent(t *testing.T) {
	m := testModel(t)
	m.newThread()
	m.deleteCurrentThread()

	if m.st.CurrentThreadID != "" {
		t.Errorf("current = %q, want empty", m.st.CurrentThreadID)
	}
}

func TestSelectThreadOffsetClamps(t *testing.T) {
	m := testModel(t)

	a := thread.New()
	a.UpdatedAt = time.Now()
	m.putThread(a)

	b := thread.New()
	b.UpdatedAt = time.Now().Add(-time.Hour)
	m.putThread(b)
	m.st.CurrentThreadID = a.ID

	m.selectThreadOffset(1)
	if m.st.CurrentThreadID != b.ID {
		t.Errorf("offset +1 selected %q, want %q", m.st.CurrentThreadID, b.ID)
	}

	// Clamped at the end
	m.selectThreadOffset(5)
	if m.st.CurrentThreadID != b.ID {
		t.Error("offset past the end should clamp")
	}

	m.selectThreadOffset(-5)
	if m.st.CurrentThreadID != a.ID {
		t.Error("offset before the start should clamp")
	}
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitQuestionAppendsMessages(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("what is 2 + 2")

	_, cmd := m.submitQuestion()
	if cmd == nil {
		t.Fatal("submit should return commands")
	}
	if m.state != StateStreaming {
		t.Errorf("state = %v, want StateStreaming", m.state)
	}

	th, ok := m.currentThread()
	if !ok {
		t.Fatal("submit should create a thread")
	}
	if th.MessageCount() != 2 {
		t.Fatalf("message count = %d, want user + empty assistant", th.MessageCount())
	}
	if th.Messages[0].Role != thread.RoleUser || th.Messages[0].Content != "what is 2 + 2" {
		t.Error("first message should be the question")
	}
	if th.Messages[1].Role != thread.RoleAssistant || th.Messages[1].Content != "" {
		t.Error("second message should be the empty assistant seed")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared")
	}
}

func TestSubmitQuestionTitlesNewThread(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("how do quadratic roots work")

	m.submitQuestion()
	th, _ := m.currentThread()
	if th.Title == thread.DefaultTitle {
		t.Errorf("thread should take its title from the first question, got %q", th.Title)
	}
	if !strings.Contains(th.Title, "quadratic") {
		t.Errorf("title %q should reflect the question", th.Title)
	}
}

func TestSubmitBlankQuestionIgnored(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("   ")

	m.submitQuestion()
	if m.state != StateReady {
		t.Error("blank question should not start streaming")
	}
	if len(m.st.Threads) != 0 {
		t.Error("blank question should not create a thread")
	}
}

func TestSubmitWhileStreamingIgnored(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("first question")
	m.submitQuestion()

	m.input.SetValue("second question")
	m.submitQuestion()

	th, _ := m.currentThread()
	if th.MessageCount() != 2 {
		t.Errorf("second submit while streaming should be ignored, count = %d", th.MessageCount())
	}
}

// =============================================================================
// STREAMING TESTS
// =============================================================================

func TestReplyChunksAccumulate(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("what is 2 + 2")
	m.submitQuestion()
	id := m.st.CurrentThreadID

	m.handleReplyChunk(ReplyChunkMsg{ThreadID: id, Content: "The answer "})
	m.handleReplyChunk(ReplyChunkMsg{ThreadID: id, Content: "is $4$."})

	th, _ := m.currentThread()
	last, _ := th.LastMessage()
	if last.Content != "The answer is $4$." {
		t.Errorf("assistant content = %q", last.Content)
	}
}

func TestReplyDoneReturnsToReady(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("what is 2 + 2")
	m.submitQuestion()
	id := m.st.CurrentThreadID

	m.handleReplyChunk(ReplyChunkMsg{ThreadID: id, Content: "Four."})
	m.handleReplyDone(ReplyDoneMsg{ThreadID: id})

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	th, _ := m.currentThread()
	last, _ := th.LastMessage()
	if last.Content != "Four." {
		t.Errorf("final content = %q", last.Content)
	}
}

func TestReplyErrorKeepsPartialContent(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("what is 2 + 2")
	m.submitQuestion()
	id := m.st.CurrentThreadID

	m.handleReplyChunk(ReplyChunkMsg{ThreadID: id, Content: "partial"})
	m.handleReplyError(ReplyErrorMsg{ThreadID: id, Err: context.Canceled})

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	th, _ := m.currentThread()
	last, _ := th.LastMessage()
	if last.Content != "partial" {
		t.Errorf("partial content should survive an error, got %q", last.Content)
	}
}

// =============================================================================
// EXTERNAL RELOAD TESTS
// =============================================================================

func TestStateReloadedAdoptsDiskState(t *testing.T) {
	m := testModel(t)
	m.newThread()

	external := thread.EmptyState()
	th := thread.New()
	th.Title = "From another process"
	external.Threads[th.ID] = th
	external.CurrentThreadID = th.ID

	m.handleStateReloaded(StateReloadedMsg{State: external})
	if m.st.CurrentThreadID != th.ID {
		t.Error("reload should adopt the on-disk state")
	}
}

func TestStateReloadedSkippedWhileStreaming(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("question")
	m.submitQuestion()
	id := m.st.CurrentThreadID

	m.handleStateReloaded(StateReloadedMsg{State: thread.EmptyState()})
	if m.st.CurrentThreadID != id {
		t.Error("reload during streaming should be deferred")
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestViewRendersWelcomeWhenEmpty(t *testing.T) {
	m := testModel(t)
	m.handleResize(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	if !strings.Contains(view, "math question") {
		t.Error("empty state should show the welcome screen")
	}
}

func TestViewRendersThreadContent(t *testing.T) {
	m := testModel(t)
	m.handleResize(tea.WindowSizeMsg{Width: 100, Height: 30})

	th := thread.New()
	th = thread.Append(th, thread.NewMessage(thread.RoleUser, "hello tutor"))
	th = thread.Rename(th, "Greeting")
	m.putThread(th)
	m.refreshSidebar()
	m.refreshViewport()

	view := m.View()
	if !strings.Contains(view, "hello tutor") {
		t.Error("view should show the thread's messages")
	}
	if !strings.Contains(view, "Greeting") {
		t.Error("view should show the thread title")
	}
}

func TestRenderContentRepairsAndTypesets(t *testing.T) {
	m := testModel(t)

	got := m.renderContent("solve $x <0xE2><0x86><0x92> y$")
	if strings.Contains(got, "<0x") {
		t.Errorf("byte runs should be repaired: %q", got)
	}
}

// =============================================================================
// SAVE BADGE LIFECYCLE TESTS
// =============================================================================

func TestUnsavedBadgeClearsAfterDebouncedSave(t *testing.T) {
	cfg := config.Default()
	kv := storage.NewMemKV()
	store := storage.NewThreadStoreWithWindow(kv, 10*time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	m := New(cfg, store, &tutor.LocalTutor{})
	m.newThread()

	scheduled := ScheduleSaveCmd(store, m.st)()
	_, cmd := m.Update(scheduled)
	if !m.dirty {
		t.Fatal("expected unsaved state after a scheduled save")
	}
	if cmd == nil {
		t.Fatal("expected a flush command to follow the scheduled save")
	}

	// The flush command ticks until just past the debounce window.
	flushed := cmd()
	fm, ok := flushed.(SaveFlushedMsg)
	if !ok {
		t.Fatalf("flush command returned %T, want SaveFlushedMsg", flushed)
	}
	if fm.Err != nil {
		t.Fatalf("flush failed: %v", fm.Err)
	}
	m.Update(flushed)

	if m.dirty {
		t.Fatal("unsaved badge still set after the debounced save landed")
	}
	if _, found, err := kv.Get(storage.StateKey); err != nil || !found {
		t.Fatalf("state not persisted: found=%v err=%v", found, err)
	}
}

func TestUnsavedBadgeSurvivesBurstUntilFlush(t *testing.T) {
	cfg := config.Default()
	kv := storage.NewMemKV()
	store := storage.NewThreadStoreWithWindow(kv, 10*time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	m := New(cfg, store, &tutor.LocalTutor{})
	m.newThread()

	var flushCmds []tea.Cmd
	for i := 0; i < 3; i++ {
		scheduled := ScheduleSaveCmd(store, m.st)()
		_, cmd := m.Update(scheduled)
		flushCmds = append(flushCmds, cmd)
	}
	if !m.dirty {
		t.Fatal("expected unsaved state mid-burst")
	}

	for _, cmd := range flushCmds {
		m.Update(cmd())
	}
	if m.dirty {
		t.Fatal("unsaved badge still set after the burst flushed")
	}
}
