// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"sync"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// SAVE DEBOUNCER
// =============================================================================

// Debouncer coalesces bursts of save requests into a single write. It holds
// at most one pending state and one pending timer: scheduling while a timer
// is armed replaces the state and rearms the timer, so the last scheduled
// state is the one written.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	save    func(thread.State) error
	timer   *time.Timer
	pending *thread.State
	stopped bool
}

// NewDebouncer creates a debouncer that calls save after window elapses
// with no further Schedule calls.
func NewDebouncer(window time.Duration, save func(thread.State) error) *Debouncer {
	return &Debouncer{
		window: window,
		save:   save,
	}
}

// Schedule records st as the state to write and (re)arms the timer.
// Scheduling on a stopped debouncer is a no-op.
func (d *Debouncer) Schedule(st thread.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	snapshot := st.Clone()
	d.pending = &snapshot

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire writes the pending state, if any is still pending.
func (d *Debouncer) fire() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if pending != nil {
		// Save errors here have no caller to return to. The next explicit
		// save surfaces persistent failures.
		_ = d.save(*pending)
	}
}

// Flush writes any pending state immediately and disarms the timer.
func (d *Debouncer) Flush() error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	if pending == nil {
		return nil
	}
	return d.save(*pending)
}

// Stop disarms the timer and discards any pending state. A stopped
// debouncer ignores further Schedule calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
