// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package textpipe repairs malformed assistant output before rendering.

The tutoring backend occasionally emits two kinds of corruption:

  - Multi-byte characters flattened into runs of bracketed hex byte tokens
    (caffe<0xC3><0xA9>ine instead of caffeéine). DecodeByteRuns restores
    them, leaving invalid sequences untouched.
  - TeX arrow commands whose leading "\r" was eaten as a carriage return
    ("\rightarrow" arriving as "ightarrow"). Normalize restores them inside
    math spans only.

Normalize also promotes isolated newlines to markdown hard breaks so
soft-wrapped source keeps its visual line structure.

Every function in this package is total: no panics, no errors, and input
with nothing to repair passes through unchanged. Clean composes the whole
pipeline and is what consumers call on raw message text.
*/
package textpipe
