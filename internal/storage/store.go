// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// THREAD STORE
// =============================================================================

// StateKey is the single key under which the full chat state is persisted.
const StateKey = "mathtutor_threads_v1"

// DefaultDebounceWindow is the save coalescing window for burst updates
// (streaming responses schedule a save per chunk).
const DefaultDebounceWindow = 250 * time.Millisecond

// ThreadStore persists the full chat state under one key of a KV backend.
//
// Loading is total: any unreadable or corrupt payload yields the empty
// default instead of an error, so a damaged state file can never wedge
// startup. Saving normalizes before writing: threads are serialized most
// recently updated first, and a dangling current thread id is repaired.
type ThreadStore struct {
	kv        KV
	debouncer *Debouncer
}

// NewThreadStore creates a store over the given KV backend with the
// default debounce window.
func NewThreadStore(kv KV) *ThreadStore {
	return NewThreadStoreWithWindow(kv, DefaultDebounceWindow)
}

// NewThreadStoreWithWindow creates a store with a custom debounce window.
func NewThreadStoreWithWindow(kv KV, window time.Duration) *ThreadStore {
	s := &ThreadStore{kv: kv}
	s.debouncer = NewDebouncer(window, s.SaveState)
	return s
}

// =============================================================================
// LOAD
// =============================================================================

// LoadState reads and validates the persisted state. Missing, unreadable,
// or corrupt payloads all yield the empty default.
func (s *ThreadStore) LoadState() thread.State {
	raw, ok, err := s.kv.Get(StateKey)
	if err != nil || !ok {
		return thread.EmptyState()
	}
	st, _ := thread.ValidateState([]byte(raw))
	return st
}

// =============================================================================
// SAVE
// =============================================================================

// SaveState normalizes and writes the state immediately.
func (s *ThreadStore) SaveState(st thread.State) error {
	data, err := EncodeState(healed(st))
	if err != nil {
		return err
	}
	return s.kv.Set(StateKey, string(data))
}

// SaveStateDebounced schedules a save of st, replacing any save already
// scheduled. The last scheduled state is the one written.
func (s *ThreadStore) SaveStateDebounced(st thread.State) {
	s.debouncer.Schedule(st)
}

// Window returns the save coalescing window.
func (s *ThreadStore) Window() time.Duration {
	return s.debouncer.window
}

// Flush writes any pending debounced save immediately.
func (s *ThreadStore) Flush() error {
	return s.debouncer.Flush()
}

// Close flushes pending writes and closes the backend.
func (s *ThreadStore) Close() error {
	flushErr := s.debouncer.Flush()
	s.debouncer.Stop()

	if err := s.kv.Close(); err != nil {
		return err
	}
	return flushErr
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// healed returns st with a resolvable current thread id: an id that no
// longer exists falls back to the most recently updated thread, or "" when
// no threads remain.
func healed(st thread.State) thread.State {
	if st.CurrentThreadID != "" {
		if _, ok := st.Threads[st.CurrentThreadID]; ok {
			return st
		}
	}

	out := st.Clone()
	if order := CanonicalOrder(st); len(order) > 0 {
		out.CurrentThreadID = order[0]
	} else {
		out.CurrentThreadID = ""
	}
	return out
}

// CanonicalOrder returns thread ids sorted most recently updated first,
// with the id as tie-break so equal timestamps still order deterministically.
func CanonicalOrder(st thread.State) []string {
	ids := make([]string, 0, len(st.Threads))
	for id := range st.Threads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := st.Threads[ids[i]], st.Threads[ids[j]]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return ids[i] < ids[j]
	})
	return ids
}

// SortedThreads returns the threads in canonical order, ready for display.
func SortedThreads(st thread.State) []thread.Thread {
	order := CanonicalOrder(st)
	out := make([]thread.Thread, 0, len(order))
	for _, id := range order {
		out = append(out, st.Threads[id])
	}
	return out
}

// =============================================================================
// DETERMINISTIC ENCODING
// =============================================================================

// EncodeState serializes a state with threads emitted in canonical order.
// Encoding the result of a load produces byte-identical output, which keeps
// no-op saves from churning the state file.
func EncodeState(st thread.State) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if st.CurrentThreadID != "" {
		buf.WriteString(`"current_thread_id":`)
		if err := encodeJSON(&buf, st.CurrentThreadID); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	buf.WriteString(`"threads":{`)
	for i, id := range CanonicalOrder(st) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, id); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, st.Threads[id]); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// encodeJSON marshals v into buf without a trailing newline.
func encodeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
