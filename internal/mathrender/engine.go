// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mathrender renders TeX-style math segments for terminal display.
package mathrender

import (
	"fmt"
)

// =============================================================================
// TYPESETTING ENGINE BOUNDARY
// =============================================================================

// Engine converts a math source expression into renderable markup.
// Implementations may reject expressions they cannot typeset; callers are
// expected to fall back to the literal source text.
type Engine interface {
	Render(src string) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(src string) (string, error)

// Render implements Engine.
func (f EngineFunc) Render(src string) (string, error) {
	return f(src)
}

// RenderError reports that an engine rejected an expression. The failing
// source is carried so callers can fall back to displaying it literally.
type RenderError struct {
	Src   string
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("math render failed for %q: %v", e.Src, e.Cause)
	}
	return fmt.Sprintf("math render failed for %q", e.Src)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// ERROR-SUPPRESSING ADAPTER
// =============================================================================

// Safe wraps an engine so that no failure mode escapes as a panic.
// Whatever the underlying engine does on bad input - error return or
// panic - the caller sees a plain (markup, error) pair. Every engine
// handed to a renderer in this package goes through Safe.
func Safe(e Engine) Engine {
	if e == nil {
		return EngineFunc(func(src string) (string, error) {
			return "", &RenderError{Src: src, Cause: errNoEngine}
		})
	}
	if _, ok := e.(*safeEngine); ok {
		return e
	}
	return &safeEngine{inner: e}
}

var errNoEngine = fmt.Errorf("no typesetting engine configured")

type safeEngine struct {
	inner Engine
}

func (s *safeEngine) Render(src string) (markup string, err error) {
	defer func() {
		if r := recover(); r != nil {
			markup = ""
			err = &RenderError{Src: src, Cause: fmt.Errorf("engine panic: %v", r)}
		}
	}()

	markup, err = s.inner.Render(src)
	if err != nil {
		if _, ok := err.(*RenderError); !ok {
			err = &RenderError{Src: src, Cause: err}
		}
		return "", err
	}
	return markup, nil
}
