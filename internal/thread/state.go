// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import (
	"encoding/json"
)

// =============================================================================
// PERSISTED STATE
// =============================================================================

// State is the full persisted chat state: every thread keyed by id, plus
// which thread is currently open. A CurrentThreadID of "" means none.
//
// The invariant a valid State upholds: CurrentThreadID, when non-empty,
// resolves to a key in Threads. The storage layer repairs violations on
// save rather than tolerating them (see storage.ThreadStore).
type State struct {
	CurrentThreadID string            `json:"current_thread_id,omitempty"`
	Threads         map[string]Thread `json:"threads"`
}

// EmptyState returns the default state used whenever the persisted payload
// is absent or unusable.
func EmptyState() State {
	return State{
		CurrentThreadID: "",
		Threads:         map[string]Thread{},
	}
}

// Clone returns a deep copy of the state. Thread values share message
// slices with the original, which is safe because messages are append-only
// and the mutation helpers in this package always copy before appending.
func (s State) Clone() State {
	threads := make(map[string]Thread, len(s.Threads))
	for id, t := range s.Threads {
		threads[id] = t
	}
	return State{
		CurrentThreadID: s.CurrentThreadID,
		Threads:         threads,
	}
}

// =============================================================================
// SCHEMA VALIDATION
// =============================================================================

// ValidateState parses a persisted payload. It returns (state, true) for a
// structurally valid payload and (EmptyState, false) otherwise - it never
// panics and never returns an error. "Structurally valid" means: top level
// is a JSON object carrying a threads mapping. Anything else (corrupt
// bytes, a JSON array, threads missing or null) counts as corruption and
// the caller starts from the empty default.
func ValidateState(raw []byte) (State, bool) {
	if len(raw) == 0 {
		return EmptyState(), false
	}

	var probe struct {
		CurrentThreadID string                     `json:"current_thread_id"`
		Threads         map[string]json.RawMessage `json:"threads"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return EmptyState(), false
	}
	if probe.Threads == nil {
		return EmptyState(), false
	}

	st := State{
		CurrentThreadID: probe.CurrentThreadID,
		Threads:         make(map[string]Thread, len(probe.Threads)),
	}
	for id, rawThread := range probe.Threads {
		var t Thread
		if err := json.Unmarshal(rawThread, &t); err != nil {
			// One corrupted thread does not poison the rest.
			continue
		}
		if t.ID == "" {
			t.ID = id
		}
		if t.Messages == nil {
			t.Messages = []Message{}
		}
		st.Threads[id] = t
	}
	return st, true
}
