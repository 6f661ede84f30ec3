// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParserFlags(t *testing.T) {
	p := NewArgParser([]string{"export", "--format", "json", "--out=./notes", "--quiet"})

	if p.Subcommand() != "export" {
		t.Errorf("subcommand = %q, want export", p.Subcommand())
	}
	if p.Flag("format") != "json" {
		t.Errorf("format = %q, want json", p.Flag("format"))
	}
	if p.Flag("out") != "./notes" {
		t.Errorf("out = %q, want ./notes", p.Flag("out"))
	}
	if !p.BoolFlag("quiet") {
		t.Error("quiet should be true")
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--color=true"})

	if p.BoolFlag("json") {
		t.Error("json=false should parse as false")
	}
	if !p.BoolFlag("color") {
		t.Error("color=true should parse as true")
	}
}

func TestArgParserPositional(t *testing.T) {
	p := NewArgParser([]string{"show", "thr_abc", "extra"})

	if p.Positional(0) != "show" || p.Positional(1) != "thr_abc" {
		t.Error("positional arguments misparsed")
	}
	if p.Positional(9) != "" {
		t.Error("out-of-range positional should be empty")
	}
	if got := p.PositionalFrom(1); len(got) != 2 || got[0] != "thr_abc" {
		t.Errorf("PositionalFrom(1) = %v", got)
	}
}

func TestArgParserShortFlag(t *testing.T) {
	p := NewArgParser([]string{"-f", "markdown"})
	if p.Flag("f") != "markdown" {
		t.Errorf("short flag = %q, want markdown", p.Flag("f"))
	}
}

func TestArgParserFlagOrDefault(t *testing.T) {
	p := NewArgParser([]string{})
	if got := p.FlagOrDefault("format", "markdown"); got != "markdown" {
		t.Errorf("default = %q, want markdown", got)
	}
}

// =============================================================================
// GLOBAL FLAG TESTS
// =============================================================================

func TestParseGlobalFlags(t *testing.T) {
	remaining, args := parseGlobalFlags([]string{"-q", "threads", "--no-color", "list"})

	if !args.Quiet || !args.NoColor {
		t.Error("global flags should be extracted")
	}
	if len(remaining) != 2 || remaining[0] != "threads" || remaining[1] != "list" {
		t.Errorf("remaining = %v", remaining)
	}
}

// =============================================================================
// THREAD RESOLUTION TESTS
// =============================================================================

func stateWithThreads(ids ...string) thread.State {
	st := thread.EmptyState()
	for _, id := range ids {
		st.Threads[id] = thread.Thread{
			ID:        id,
			Title:     "t",
			Messages:  []thread.Message{},
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
	}
	return st
}

func TestResolveThreadExact(t *testing.T) {
	st := stateWithThreads("thr_abc123", "thr_def456")

	th, ok := resolveThread(st, "thr_abc123")
	if !ok || th.ID != "thr_abc123" {
		t.Error("exact ID should resolve")
	}
}

func TestResolveThreadUniquePrefix(t *testing.T) {
	st := stateWithThreads("thr_abc123", "thr_def456")

	th, ok := resolveThread(st, "thr_abc")
	if !ok || th.ID != "thr_abc123" {
		t.Error("unique prefix should resolve")
	}
}

func TestResolveThreadAmbiguousPrefix(t *testing.T) {
	st := stateWithThreads("thr_abc123", "thr_abc999")

	if _, ok := resolveThread(st, "thr_abc"); ok {
		t.Error("ambiguous prefix should not resolve")
	}
}

func TestResolveThreadMissing(t *testing.T) {
	st := stateWithThreads("thr_abc123")

	if _, ok := resolveThread(st, "thr_zzz"); ok {
		t.Error("unknown ID should not resolve")
	}
	if _, ok := resolveThread(st, ""); ok {
		t.Error("empty ID should not resolve")
	}
}
