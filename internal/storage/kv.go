// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/mathtutor-tui/internal/util"
)

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is a minimal string key-value store. Implementations must be safe for
// concurrent use.
//
// Get reports presence explicitly: a missing key is (_, false, nil), not an
// error. Errors are reserved for the backend actually failing.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// =============================================================================
// IN-MEMORY KV
// =============================================================================

// MemKV is an in-memory KV used for tests and ephemeral sessions.
type MemKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

// Get retrieves a value by key.
func (m *MemKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value under key.
func (m *MemKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemKV) Close() error {
	return nil
}

// =============================================================================
// FILE-BACKED KV
// =============================================================================

// FileKV stores each key as a JSON file under a base directory.
// Default location: ~/.mathtutor/state/
type FileKV struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string

	mu sync.Mutex
}

// NewFileKV creates a file-backed store under the user's home directory.
func NewFileKV() (*FileKV, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileKVWithDir(filepath.Join(homeDir, ".mathtutor", "state"))
}

// NewFileKVWithDir creates a file-backed store in a custom directory.
func NewFileKVWithDir(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileKV{BaseDir: baseDir}, nil
}

// Path returns the file path that backs a key. Useful for pointing a file
// watcher at the state file.
func (f *FileKV) Path(key string) string {
	return filepath.Join(f.BaseDir, sanitizeKey(key)+".json")
}

// Get retrieves a value by key.
func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set stores a value under key.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(f.Path(key), []byte(value), 0644)
}

// Delete removes a key. Deleting a missing key is not an error.
func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.Path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (f *FileKV) Close() error {
	return nil
}

// sanitizeKey maps a key to a safe file name component.
func sanitizeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrStoreClosed is returned when an operation runs against a closed store.
// Use errors.Is(err, ErrStoreClosed) to check for this error.
var ErrStoreClosed = &StoreError{Message: "store is closed"}

// StoreError represents a storage-related error.
// It implements the error interface and can be compared using errors.Is.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
