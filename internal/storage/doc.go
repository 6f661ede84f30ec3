// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides chat state persistence for mathtutor TUI.
//
// The full chat state (every thread plus the open thread id) lives under a
// single key of a pluggable KV backend. Loads are total: damaged payloads
// come back as the empty default instead of an error. Saves normalize the
// state and can be debounced so streaming updates coalesce into one write.
//
// # Key Types
//
//   - KV: Minimal key-value backend interface
//   - FileKV / MemKV / SQLiteKV: Backend implementations
//   - ThreadStore: Load/save of the full chat state under StateKey
//   - Debouncer: Coalesces bursts of saves, last write wins
//   - StateWatcher: Reload notification when another process writes the file
//
// # Usage
//
// Open a store and load state:
//
//	kv, err := storage.NewFileKV()
//	store := storage.NewThreadStore(kv)
//	state := store.LoadState()
//
// Save during streaming without write amplification:
//
//	store.SaveStateDebounced(state)
//	defer store.Close() // flushes pending writes
//
// # Storage Location
//
// The file backend keeps state in ~/.mathtutor/state/ as JSON.
package storage
