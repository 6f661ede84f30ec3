// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathrender

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/mathtutor-tui/internal/textpipe"
)

// =============================================================================
// BLOCK RENDERER
// =============================================================================

// BlockRenderer is the full message pipeline: text repair, math
// typesetting of $-spans, then glamour markdown rendering. The TUI feeds
// complete assistant and user messages through it.
type BlockRenderer struct {
	engine Engine
	tr     *glamour.TermRenderer
}

// NewBlockRenderer creates a block renderer with the given engine, word
// wrap width, and glamour style name ("auto" picks light/dark from the
// terminal).
func NewBlockRenderer(e Engine, width int, style string) (*BlockRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &BlockRenderer{engine: Safe(e), tr: tr}, nil
}

// Render runs the whole pipeline on raw upstream text. It is total: on any
// failure it falls back to the cleaned (or original) text rather than
// returning an error to the view layer.
func (r *BlockRenderer) Render(text string) string {
	clean := textpipe.Clean(text)
	pre := r.typesetSpans(clean)

	out, err := r.tr.Render(pre)
	if err != nil {
		return pre
	}
	return strings.TrimRight(out, "\n")
}

// typesetSpans replaces each $...$ / $$...$$ span with engine output before
// the markdown pass, so glamour never sees raw TeX. Spans the engine
// rejects keep their original delimited text - segment failures stay
// segment-local.
func (r *BlockRenderer) typesetSpans(s string) string {
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

		d := 1
		if i+1 < len(s) && s[i+1] == '$' {
			d = 2
		}
		delim := s[i : i+d]

		rel := strings.Index(s[i+d:], delim)
		if rel < 0 {
			b.WriteString(s[i:])
			break
		}

		src := strings.TrimSpace(s[i+d : i+d+rel])
		if src == "" {
			i += d + rel + d
			continue
		}
		if out, err := r.engine.Render(src); err == nil {
			b.WriteString(out)
		} else {
			b.WriteString(s[i : i+d+rel+d])
		}
		i += d + rel + d
	}

	return b.String()
}
