// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package thread contains the data structures for chat threads and messages.

Messages are immutable once created; threads are append-only values whose
mutation helpers (Append, Rename) return fresh copies. State is everything
the store persists: the id-keyed thread map plus the currently open thread.

ValidateState is the single gate between raw persisted bytes and a usable
State. It returns a tagged valid/use-default result instead of an error so
the repair policy - "anything unusable means start empty" - lives in one
testable function.
*/
package thread
