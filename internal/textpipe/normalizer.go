// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textpipe

import (
	"strings"
)

// Normalize prepares decoded assistant text for markdown rendering.
// Two passes, in this order:
//
//  1. Line-break promotion: an isolated newline becomes a markdown hard
//     break (two trailing spaces before the newline). Runs of two or more
//     newlines are paragraph breaks and stay untouched.
//  2. Math arrow repair: inside $...$ / $$...$$ spans, arrow commands whose
//     leading "\r" was eaten upstream are restored.
//
// Normalize is total and returns input with nothing to repair unchanged.
func Normalize(s string) string {
	return repairMathArrows(promoteLineBreaks(s))
}

// Clean runs the full repair pipeline: byte-run decoding, then
// normalization. This is the entry point consumers feed raw upstream
// message text through before rendering.
func Clean(s string) string {
	return Normalize(DecodeByteRuns(s))
}

// =============================================================================
// LINE-BREAK PROMOTION
// =============================================================================

// promoteLineBreaks rewrites every isolated "\n" to "  \n". A newline is
// isolated when neither neighbor is a newline; only those act as soft wraps
// that need promoting to hard breaks.
func promoteLineBreaks(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\n' {
			b.WriteByte(c)
			continue
		}
		prevIsNL := i > 0 && s[i-1] == '\n'
		nextIsNL := i+1 < len(s) && s[i+1] == '\n'
		if !prevIsNL && !nextIsNL {
			b.WriteString("  \n")
		} else {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// =============================================================================
// MATH ARROW REPAIR
// =============================================================================

// repairMathArrows applies arrow repair to the content of each math span.
// A span is delimited by a matching pair of same-length delimiters ($ or $$),
// content matched non-greedily so spans do not swallow each other. Text
// outside spans is copied through untouched. An unmatched opening delimiter
// ends span scanning for the rest of the input.
func repairMathArrows(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}

		// Delimiter run: $$ when doubled, $ otherwise.
		d := 1
		if i+1 < len(s) && s[i+1] == '$' {
			d = 2
		}
		delim := s[i : i+d]

		rel := strings.Index(s[i+d:], delim)
		if rel < 0 {
			// Unmatched delimiter: remainder is plain text.
			b.WriteString(s[i:])
			break
		}

		content := s[i+d : i+d+rel]
		b.WriteString(delim)
		b.WriteString(repairArrows(content))
		b.WriteString(delim)
		i += d + rel + d
	}

	return b.String()
}

const arrowTail = "ightarrow"

// repairArrows restores corrupted arrow commands within one math span.
// Rules, in order of precedence:
//
//  1. "\left" followed by a stripped arrow token ("ightarrow", optionally
//     with a lone leading backslash) becomes "\leftrightarrow", replacing
//     the whole matched region. Checked first so rule 2 cannot consume the
//     token and produce the wrong arrow.
//  2. Any remaining stripped token becomes "\rightarrow".
//  3. A bare word "rightarrow" without a preceding backslash gets one.
//
// Rule 2 has no word-boundary safeguard: the tail of an unrelated word
// ending in "ightarrow" is rewritten too. That matches the upstream
// producer's observed behavior and is kept intentionally.
func repairArrows(span string) string {
	if !strings.Contains(span, arrowTail) {
		return span
	}

	var b strings.Builder
	b.Grow(len(span) + 8)

	// emitted tracks how much of span has been written (or replaced).
	emitted := 0
	for {
		rel := strings.Index(span[emitted:], arrowTail)
		if rel < 0 {
			b.WriteString(span[emitted:])
			break
		}
		p := emitted + rel

		if p > 0 && span[p-1] == 'r' {
			// The sequence reads "rightarrow". Rule 3 backslashes it only
			// when it is a bare word: not already a command, and not the
			// tail of a longer word such as "leftrightarrow" (which rule 1
			// may have just produced).
			wordStart := p - 1
			b.WriteString(span[emitted:wordStart])
			switch {
			case wordStart > 0 && span[wordStart-1] == '\\':
				b.WriteString("rightarrow") // already a command
			case wordStart == 0 || !isWordByte(span[wordStart-1]):
				b.WriteString(`\rightarrow`)
			default:
				b.WriteString("rightarrow") // tail of an unrelated word
			}
			emitted = p + len(arrowTail)
			continue
		}

		// Stripped token, with or without a lone leading backslash.
		tokStart := p
		if p > 0 && span[p-1] == '\\' {
			tokStart = p - 1
		}

		// Rule 1: token preceded (modulo spaces) by \left.
		if leftStart, ok := precededByLeft(span, tokStart); ok {
			b.WriteString(span[emitted:leftStart])
			b.WriteString(`\leftrightarrow`)
		} else {
			b.WriteString(span[emitted:tokStart])
			b.WriteString(`\rightarrow`)
		}
		emitted = p + len(arrowTail)
	}

	return b.String()
}

// isWordByte reports whether c continues a word (so "Xrightarrow" is not a
// bare "rightarrow" when X is a word byte).
func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// precededByLeft reports whether span[:tokStart], ignoring trailing spaces,
// ends with the \left command, returning the index where \left begins.
func precededByLeft(span string, tokStart int) (int, bool) {
	j := tokStart
	for j > 0 && span[j-1] == ' ' {
		j--
	}
	const left = `\left`
	if j < len(left) || span[j-len(left):j] != left {
		return 0, false
	}
	return j - len(left), true
}
