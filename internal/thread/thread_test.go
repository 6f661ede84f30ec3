// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Tutor"},
		{Role("system"), "system"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("user and assistant roles must be valid")
	}
	if Role("system").Valid() {
		t.Error("unknown role must not be valid")
	}
	if Role("").Valid() {
		t.Error("empty role must not be valid")
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	m := NewMessage(RoleUser, "hello")

	if !strings.HasPrefix(m.ID, "msg_") {
		t.Errorf("message ID should carry msg_ prefix, got %q", m.ID)
	}
	if m.Role != RoleUser {
		t.Errorf("Role = %q, want %q", m.Role, RoleUser)
	}
	if m.Content != "hello" {
		t.Errorf("Content = %q, want %q", m.Content, "hello")
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		maxRunes int
		want     string
	}{
		{"short", "hello", 40, "hello"},
		{"first line only", "first line\nsecond line", 40, "first line"},
		{"truncated", "abcdefghij", 8, "abcde..."},
		{"exact fit", "abcdefgh", 8, "abcdefgh"},
		{"tiny budget", "abcdef", 2, "ab"},
		{"multibyte", "ααααααααint(αα)", 10, "ααααααα..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Content: tt.content}
			if got := m.Preview(tt.maxRunes); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxRunes, got, tt.want)
			}
		})
	}
}

// =============================================================================
// THREAD TESTS
// =============================================================================

func TestNew(t *testing.T) {
	th := New()

	if !strings.HasPrefix(th.ID, "thr_") {
		t.Errorf("thread ID should carry thr_ prefix, got %q", th.ID)
	}
	if th.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", th.Title, DefaultTitle)
	}
	if th.Messages == nil || len(th.Messages) != 0 {
		t.Error("new thread should have an empty non-nil message slice")
	}
	if !th.CreatedAt.Equal(th.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match at creation")
	}
}

func TestAppendDoesNotMutateOriginal(t *testing.T) {
	orig := New()
	first := NewMessage(RoleUser, "one")
	withOne := Append(orig, first)

	if len(orig.Messages) != 0 {
		t.Fatalf("original thread mutated: %d messages", len(orig.Messages))
	}
	if len(withOne.Messages) != 1 {
		t.Fatalf("appended thread has %d messages, want 1", len(withOne.Messages))
	}

	// Appending to the copy must not leak into earlier copies either.
	withTwo := Append(withOne, NewMessage(RoleAssistant, "two"))
	if len(withOne.Messages) != 1 {
		t.Errorf("intermediate thread mutated: %d messages", len(withOne.Messages))
	}
	if len(withTwo.Messages) != 2 {
		t.Errorf("final thread has %d messages, want 2", len(withTwo.Messages))
	}
}

func TestAppendSetsUpdatedAt(t *testing.T) {
	th := New()
	msg := NewMessage(RoleUser, "hi")
	got := Append(th, msg)

	if !got.UpdatedAt.Equal(msg.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want message time %v", got.UpdatedAt, msg.CreatedAt)
	}
	if !got.CreatedAt.Equal(th.CreatedAt) {
		t.Error("Append must not change CreatedAt")
	}
}

func TestRename(t *testing.T) {
	orig := Append(New(), NewMessage(RoleUser, "q"))
	before := orig.UpdatedAt

	renamed := Rename(orig, "Quadratic equations")

	if orig.Title != DefaultTitle {
		t.Errorf("original title mutated to %q", orig.Title)
	}
	if renamed.Title != "Quadratic equations" {
		t.Errorf("Title = %q", renamed.Title)
	}
	if renamed.UpdatedAt.Before(before) {
		t.Error("Rename should refresh UpdatedAt")
	}
	if len(renamed.Messages) != 1 {
		t.Errorf("Rename changed message count to %d", len(renamed.Messages))
	}
}

func TestLastMessage(t *testing.T) {
	th := New()
	if _, ok := th.LastMessage(); ok {
		t.Error("empty thread should report no last message")
	}

	th = Append(th, NewMessage(RoleUser, "first"))
	th = Append(th, NewMessage(RoleAssistant, "second"))

	last, ok := th.LastMessage()
	if !ok || last.Content != "second" {
		t.Errorf("LastMessage = %q, %v; want %q, true", last.Content, ok, "second")
	}
}

func TestThreadPreview(t *testing.T) {
	th := New()
	if got := th.Preview(40); got != "Empty thread" {
		t.Errorf("empty thread preview = %q", got)
	}

	th = Append(th, NewMessage(RoleAssistant, "welcome"))
	th = Append(th, NewMessage(RoleUser, "solve x^2 = 4"))
	if got := th.Preview(40); got != "solve x^2 = 4" {
		t.Errorf("preview = %q, want first user message", got)
	}
}

// =============================================================================
// ID TESTS
// =============================================================================

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID("thr")
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestNewIDShape(t *testing.T) {
	id := NewID("msg")
	parts := strings.Split(id, "_")
	if len(parts) != 3 {
		t.Fatalf("ID %q should have 3 parts, got %d", id, len(parts))
	}
	if parts[0] != "msg" {
		t.Errorf("prefix = %q, want msg", parts[0])
	}
	if len(parts[1]) != 12 {
		t.Errorf("random fragment %q should be 12 chars", parts[1])
	}
}

// =============================================================================
// STATE VALIDATION TESTS
// =============================================================================

func TestValidateStateValid(t *testing.T) {
	th := Append(New(), NewMessage(RoleUser, "hi"))
	raw, err := json.Marshal(State{
		CurrentThreadID: th.ID,
		Threads:         map[string]Thread{th.ID: th},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	st, ok := ValidateState(raw)
	if !ok {
		t.Fatal("valid payload rejected")
	}
	if st.CurrentThreadID != th.ID {
		t.Errorf("CurrentThreadID = %q, want %q", st.CurrentThreadID, th.ID)
	}
	got, found := st.Threads[th.ID]
	if !found || len(got.Messages) != 1 {
		t.Errorf("thread not restored intact: %+v", got)
	}
}

func TestValidateStateRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "not json {{{"},
		{"json array", `["a", "b"]`},
		{"json string", `"threads"`},
		{"missing threads", `{"current_thread_id": "thr_x"}`},
		{"null threads", `{"threads": null}`},
		{"threads is array", `{"threads": ["thr_x"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := ValidateState([]byte(tt.raw))
			if ok {
				t.Fatal("corrupt payload accepted")
			}
			if st.Threads == nil || len(st.Threads) != 0 {
				t.Error("rejection must return the empty default state")
			}
		})
	}
}

func TestValidateStateSkipsCorruptThread(t *testing.T) {
	raw := []byte(`{
		"current_thread_id": "thr_good",
		"threads": {
			"thr_good": {"id": "thr_good", "title": "kept", "messages": []},
			"thr_bad": "this is not an object"
		}
	}`)

	st, ok := ValidateState(raw)
	if !ok {
		t.Fatal("payload with one corrupt thread should still validate")
	}
	if len(st.Threads) != 1 {
		t.Fatalf("got %d threads, want 1", len(st.Threads))
	}
	if _, found := st.Threads["thr_good"]; !found {
		t.Error("healthy thread dropped alongside the corrupt one")
	}
}

func TestValidateStateBackfills(t *testing.T) {
	raw := []byte(`{"threads": {"thr_k": {"title": "no id field"}}}`)

	st, ok := ValidateState(raw)
	if !ok {
		t.Fatal("payload should validate")
	}
	th := st.Threads["thr_k"]
	if th.ID != "thr_k" {
		t.Errorf("ID should backfill from map key, got %q", th.ID)
	}
	if th.Messages == nil {
		t.Error("nil messages should normalize to an empty slice")
	}
}

func TestCloneIndependence(t *testing.T) {
	th := New()
	orig := State{CurrentThreadID: th.ID, Threads: map[string]Thread{th.ID: th}}

	cl := orig.Clone()
	cl.Threads["thr_extra"] = New()
	cl.CurrentThreadID = "thr_extra"

	if len(orig.Threads) != 1 {
		t.Errorf("clone mutation leaked into original: %d threads", len(orig.Threads))
	}
	if orig.CurrentThreadID != th.ID {
		t.Errorf("CurrentThreadID mutated to %q", orig.CurrentThreadID)
	}
}

// Round-trip sanity: a state survives marshal + validate without loss.
func TestStateRoundTrip(t *testing.T) {
	a := Append(New(), NewMessage(RoleUser, "one"))
	time.Sleep(time.Millisecond)
	b := Append(New(), NewMessage(RoleUser, "two"))

	orig := State{
		CurrentThreadID: b.ID,
		Threads:         map[string]Thread{a.ID: a, b.ID: b},
	}
	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	st, ok := ValidateState(raw)
	if !ok {
		t.Fatal("round-tripped state rejected")
	}
	if len(st.Threads) != 2 {
		t.Fatalf("got %d threads, want 2", len(st.Threads))
	}
	if st.CurrentThreadID != b.ID {
		t.Errorf("CurrentThreadID = %q, want %q", st.CurrentThreadID, b.ID)
	}
	if st.Threads[a.ID].Messages[0].Content != "one" {
		t.Error("message content lost in round trip")
	}
}
