// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for mathtutor.
//
// Configuration is read from ~/.mathtutor/config.toml (or config.json as a
// fallback), merged over built-in defaults, then overridden by MATHTUTOR_*
// environment variables, and finally validated.
//
// # Sections
//
//   - storage: persistence backend (file/sqlite/memory), state dir, debounce
//   - render: math engine, glamour markdown style, word wrap, syntax theme
//   - ui: theme, compact layout, timestamps, sidebar width
//   - export: default transcript export directory and format
package config
