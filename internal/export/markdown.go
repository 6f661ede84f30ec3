// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/textpipe"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports threads to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a thread to Markdown format.
func (e *MarkdownExporter) Export(th thread.Thread) ([]byte, error) {
	if len(th.Messages) == 0 {
		return nil, fmt.Errorf("thread has no messages")
	}
	if th.CreatedAt.IsZero() {
		return nil, fmt.Errorf("thread has invalid creation timestamp")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(th.Title)))
		sb.WriteString(fmt.Sprintf("date: %s\n", th.CreatedAt.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("updated: %s\n", th.UpdatedAt.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(th.Messages)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: mathtutor-tui\n")
		sb.WriteString("---\n\n")
	}

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(th.Title)))

	for _, msg := range th.Messages {
		roleLabel := "**" + msg.Role.DisplayName() + "**"
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				roleLabel,
				msg.CreatedAt.Format("15:04:05")))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", roleLabel))
		}

		content := msg.Content
		if e.options.CleanContent {
			content = textpipe.Clean(content)
		}
		sb.WriteString(content)
		sb.WriteString("\n\n---\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeYAML escapes a string for safe use as a YAML scalar value.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#{}[]|>&*!%'\"\n") {
		s = strings.ReplaceAll(s, `"`, `\"`)
		s = strings.ReplaceAll(s, "\n", " ")
		return `"` + s + `"`
	}
	return s
}

// escapeMarkdown escapes heading-breaking characters in a title.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
