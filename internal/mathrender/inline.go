// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathrender

import (
	"strings"
)

// =============================================================================
// INLINE MATH RENDERER
// =============================================================================

// InlineRenderer renders strings containing $...$ math segments for
// contexts where the full markdown pipeline is unavailable (thread titles,
// previews, one-line fields). It is total: for any input it returns a
// displayable string and never panics. Engine failures degrade to the
// literal segment text, one segment at a time.
type InlineRenderer struct {
	engine Engine
}

// NewInlineRenderer creates an inline renderer around the given engine.
// The engine is wrapped with Safe, so panics cannot escape Render.
func NewInlineRenderer(e Engine) *InlineRenderer {
	return &InlineRenderer{engine: Safe(e)}
}

// mathHints are the command tokens used to heuristically detect a bare math
// expression (one with no $ delimiters at all).
var mathHints = []string{
	`\frac`, `\sqrt`, `\sum`, `\int`,
	`\alpha`, `\beta`, `\gamma`, `\delta`, `\theta`, `\pi`,
	`\lambda`, `\mu`, `\sigma`, `\omega`,
}

// Render converts text to terminal markup. Text outside math segments is
// sanitized and given minimal inline formatting (**bold**, #-headings).
func (r *InlineRenderer) Render(text string) string {
	// Case A: no delimiters anywhere. If the whole string looks like a
	// bare math expression, try the engine on all of it.
	if !strings.Contains(text, "$") && !strings.Contains(text, `\(`) {
		if looksLikeMath(text) {
			if out, err := r.engine.Render(text); err == nil {
				return out
			}
		}
		return formatPlain(text)
	}

	// Case B: linear left-to-right scan over $-delimited segments.
	var b strings.Builder
	rest := text
	for {
		open := strings.Index(rest, "$")
		if open < 0 {
			b.WriteString(formatPlain(rest))
			break
		}
		b.WriteString(formatPlain(rest[:open]))

		close := strings.Index(rest[open+1:], "$")
		if close < 0 {
			// Unmatched delimiter: remainder is plain text.
			b.WriteString(formatPlain(rest[open:]))
			break
		}
		close += open + 1

		src := strings.TrimSpace(rest[open+1 : close])
		if src != "" {
			if out, err := r.engine.Render(src); err == nil {
				b.WriteString(out)
			} else {
				// RenderFailure is segment-local: show this segment as
				// literal text and keep going.
				b.WriteString(formatPlain(rest[open : close+1]))
			}
		}
		rest = rest[close+1:]
	}

	return b.String()
}

// looksLikeMath reports whether a delimiter-free string reads as a bare
// math expression, by probing for recognizable command tokens.
func looksLikeMath(s string) bool {
	for _, hint := range mathHints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

// =============================================================================
// PLAIN-TEXT FORMATTING
// =============================================================================

// Terminal markup is plain text plus SGR escape sequences.
const (
	sgrBold      = "\x1b[1m"
	sgrUnderline = "\x1b[4m"
	sgrReset     = "\x1b[0m"
)

// formatPlain sanitizes text for terminal display and applies the minimal
// inline formatting pass: **bold** spans and #/##/### heading lines.
func formatPlain(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(escapeControl(text), "\n")
	for i, line := range lines {
		lines[i] = formatLine(line)
	}
	return strings.Join(lines, "\n")
}

// formatLine formats one line: heading prefix first, then bold spans.
func formatLine(line string) string {
	if level, rest, ok := headingLevel(line); ok {
		styled := sgrBold
		if level == 1 {
			styled += sgrUnderline
		}
		return styled + formatBold(rest) + sgrReset
	}
	return formatBold(line)
}

// headingLevel matches a line beginning with one, two, or three '#'
// characters followed by a space.
func headingLevel(line string) (int, string, bool) {
	level := 0
	for level < len(line) && level < 4 && line[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, line[level+1:], true
}

// formatBold rewrites **span** as bold terminal markup. An unmatched **
// is kept as literal text.
func formatBold(line string) string {
	var b strings.Builder
	for {
		open := strings.Index(line, "**")
		if open < 0 {
			b.WriteString(line)
			return b.String()
		}
		close := strings.Index(line[open+2:], "**")
		if close < 0 {
			b.WriteString(line)
			return b.String()
		}
		close += open + 2

		b.WriteString(line[:open])
		b.WriteString(sgrBold)
		b.WriteString(line[open+2 : close])
		b.WriteString(sgrReset)
		line = line[close+2:]
	}
}

// escapeControl strips control characters that could corrupt the terminal
// (stray escape sequences in upstream text are the markup-unsafe case
// here). Newlines and tabs survive.
func escapeControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			b.WriteRune('�')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
