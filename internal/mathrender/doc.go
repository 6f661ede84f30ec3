// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package mathrender renders TeX-style math segments for terminal display.

# Engine Boundary (engine.go)

The Engine interface is the seam between this package and whatever
typesetter is in use. Safe wraps any engine so that rejection surfaces as
a *RenderError and panics never escape; every renderer here applies it.

# Built-in Engine (symbols.go)

SymbolEngine typesets the TeX subset tutoring answers actually use into
Unicode (Greek letters, arrows, operators, \frac, \sqrt, scripts). It
rejects anything outside that subset so fallback paths stay exercised.

# Renderers

InlineRenderer (inline.go) handles one-line contexts: a linear scan over
$-delimited segments with per-segment failure isolation, plus a bare-
expression heuristic for strings with no delimiters at all.

BlockRenderer (block.go) is the full message path: textpipe repair, math
span typesetting, then glamour markdown rendering.

Both renderers are total - for any input they return a displayable string
and never panic.
*/
package mathrender
