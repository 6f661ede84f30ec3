// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for mathtutor TUI.
//
// The Theme type bundles every lipgloss style the UI uses, built from an
// adaptive palette that follows the terminal's light/dark background. A
// theme is created once at startup and shared by all components.
package styles
