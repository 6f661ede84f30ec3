// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textpipe

import (
	"strings"
	"testing"
)

// =============================================================================
// LINE-BREAK PROMOTION TESTS
// =============================================================================

func TestNormalize_LineBreakPromotion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty string", "", ""},
		{"no newline unchanged", "one line", "one line"},
		{"single newline promoted", "a\nb", "a  \nb"},
		{"paragraph break untouched", "a\n\nb", "a\n\nb"},
		{"mixed breaks", "a\nb\n\nc", "a  \nb\n\nc"},
		{"triple newline untouched", "a\n\n\nb", "a\n\n\nb"},
		{"leading newline promoted", "\na", "  \na"},
		{"trailing newline promoted", "a\n", "a  \n"},
		{"multiple soft wraps", "a\nb\nc", "a  \nb  \nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// MATH ARROW REPAIR TESTS
// =============================================================================

func TestNormalize_ArrowRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"left arrow joins to bidirectional",
			`$\left ightarrow$`,
			`$\leftrightarrow$`,
		},
		{
			"stripped token becomes right arrow",
			`$a ightarrow b$`,
			`$a \rightarrow b$`,
		},
		{
			"stripped token with lone backslash",
			`$a \ightarrow b$`,
			`$a \rightarrow b$`,
		},
		{
			"bare word gets backslash",
			`$a rightarrow b$`,
			`$a \rightarrow b$`,
		},
		{
			"existing command untouched",
			`$a \rightarrow b$`,
			`$a \rightarrow b$`,
		},
		{
			"existing bidirectional untouched",
			`$a \leftrightarrow b$`,
			`$a \leftrightarrow b$`,
		},
		{
			"left variant with lone backslash",
			`$\left \ightarrow$`,
			`$\leftrightarrow$`,
		},
		{
			"double dollar span",
			`$$x ightarrow y$$`,
			`$$x \rightarrow y$$`,
		},
		{
			"multiple spans repaired independently",
			`$a ightarrow b$ and $c ightarrow d$`,
			`$a \rightarrow b$ and $c \rightarrow d$`,
		},
		{
			"over-match of word tails is intentional",
			`$straightarrow$`,
			`$stra\rightarrow$`,
		},
		{
			"token start of span",
			`$ightarrow$`,
			`$\rightarrow$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_ArrowRepairSpansOnly(t *testing.T) {
	// Outside math spans the arrow text is someone's prose; leave it alone.
	in := "the word ightarrow outside spans"
	if got := Normalize(in); got != in {
		t.Errorf("Normalize(%q) = %q, want unchanged", in, got)
	}

	// Unmatched delimiter: remainder is plain text, no repair.
	in = "price is $5 and ightarrow stays"
	if got := Normalize(in); got != in {
		t.Errorf("Normalize(%q) = %q, want unchanged", in, got)
	}
}

func TestNormalize_SpansDoNotSwallowEachOther(t *testing.T) {
	// Non-greedy matching: the first span ends at the next delimiter, so
	// the middle text is not treated as math.
	got := Normalize(`$a$ ightarrow $b$`)
	if strings.Contains(got, `\rightarrow`) {
		t.Errorf("text between spans was repaired as math: %q", got)
	}
}

func TestNormalize_RuleOneBeforeRuleTwo(t *testing.T) {
	// If the stripped-token rule ran first, \left ightarrow would come out
	// as \left \rightarrow instead of the bidirectional arrow.
	got := Normalize(`$\left ightarrow$`)
	if !strings.Contains(got, `\leftrightarrow`) {
		t.Errorf("Normalize = %q, want \\leftrightarrow", got)
	}
	if strings.Contains(got, `\left \rightarrow`) {
		t.Errorf("stripped-token rule consumed the \\left form: %q", got)
	}
}

// =============================================================================
// FULL PIPELINE TESTS
// =============================================================================

func TestClean_DecodesThenNormalizes(t *testing.T) {
	// Byte-run decoding must happen before normalization so decoded
	// characters participate in line-break handling.
	in := "caf<0xC3><0xA9>\nnext"
	want := "café  \nnext"
	if got := Clean(in); got != want {
		t.Errorf("Clean(%q) = %q, want %q", in, got, want)
	}
}

func TestClean_Total(t *testing.T) {
	// Hostile inputs must pass through without panic.
	inputs := []string{
		"",
		"$",
		"$$",
		"$$$",
		"<0x",
		"<0xFF><0xFE>",
		strings.Repeat("$", 101),
		"\n\n\n",
		`\left`,
	}
	for _, in := range inputs {
		_ = Clean(in) // must not panic
	}
}
