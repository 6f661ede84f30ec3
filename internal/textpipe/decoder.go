// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe repairs malformed assistant output before rendering.
package textpipe

import (
	"strings"
	"unicode/utf8"
)

// Some upstream producers occasionally emit a multi-byte character as a run
// of bracketed hex byte tokens instead of the character itself, e.g.
//
//	caffe<0xC3><0xA9>ine
//
// where <0xC3><0xA9> is the UTF-8 encoding of 'é'. DecodeByteRuns finds
// maximal runs of strictly adjacent tokens, decodes each run as a UTF-8 byte
// sequence, and splices the decoded text back in. Runs that do not form
// valid UTF-8 are left exactly as found.

// DecodeByteRuns repairs bracketed hex byte-run artifacts in text.
// It is total: it never panics and returns input without tokens unchanged.
func DecodeByteRuns(s string) string {
	// Fast path: no token opener anywhere.
	if !strings.Contains(s, "<0x") && !strings.Contains(s, "<0X") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		raw, decoded, n := scanByteRun(s[i:])
		if n == 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if utf8.Valid(decoded) {
			b.Write(decoded)
		} else {
			// DecodeFailure: preserve the run verbatim, never drop it.
			b.WriteString(raw)
		}
		i += n
	}

	return b.String()
}

// scanByteRun scans a maximal run of strictly adjacent byte tokens at the
// start of s. It returns the raw matched text, the collected byte values in
// left-to-right order, and the number of input bytes consumed (0 when s does
// not start with a token). Adjacency is strict: any character between two
// tokens ends the run.
func scanByteRun(s string) (raw string, decoded []byte, n int) {
	for {
		v, tokLen := scanByteToken(s[n:])
		if tokLen == 0 {
			break
		}
		decoded = append(decoded, v)
		n += tokLen
	}
	return s[:n], decoded, n
}

// scanByteToken matches a single token of the form <0xHH> at the start of s,
// returning the byte value and the token length (0 if no match). Hex digits
// are case-insensitive, as is the "x".
func scanByteToken(s string) (byte, int) {
	if len(s) < 6 {
		return 0, 0
	}
	if s[0] != '<' || s[1] != '0' || (s[2] != 'x' && s[2] != 'X') {
		return 0, 0
	}
	hi, ok := hexVal(s[3])
	if !ok {
		return 0, 0
	}
	lo, ok := hexVal(s[4])
	if !ok {
		return 0, 0
	}
	if s[5] != '>' {
		return 0, 0
	}
	return hi<<4 | lo, 6
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
