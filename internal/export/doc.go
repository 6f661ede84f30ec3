// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides thread transcript export for mathtutor TUI.
//
// # Supported Formats
//
//   - Markdown (.md): YAML frontmatter, role-labelled sections, optional
//     per-message timestamps; content runs through the text repair pipeline
//     so the export matches what the UI showed
//   - JSON (.json): complete thread structure, re-importable
//
// # Usage
//
//	path, err := export.ExportMarkdown(th, nil)
//
// Or pick an exporter by config format name:
//
//	exp, err := export.ForFormat(cfg.Export.Format, opts)
//	path, err := export.ExportToFile(th, exp, opts)
package export
