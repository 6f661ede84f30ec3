// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathrender

import (
	"fmt"
	"strings"
)

// =============================================================================
// SYMBOL ENGINE
// =============================================================================

// SymbolEngine is the built-in typesetting engine. It translates the subset
// of TeX that tutoring answers actually use - Greek letters, arrows,
// operators, \frac, \sqrt, simple superscripts and subscripts - into
// Unicode. Expressions containing commands outside that subset are
// rejected, which routes the caller onto its literal-text fallback path.
//
// The Engine interface keeps this swappable for a full typesetter.
type SymbolEngine struct{}

// NewSymbolEngine creates the built-in Unicode typesetting engine.
func NewSymbolEngine() *SymbolEngine {
	return &SymbolEngine{}
}

// Render implements Engine.
func (e *SymbolEngine) Render(src string) (string, error) {
	p := &texParser{src: src}
	out, err := p.parse(0)
	if err != nil {
		return "", &RenderError{Src: src, Cause: err}
	}
	return out, nil
}

// =============================================================================
// TEX SUBSET PARSER
// =============================================================================

type texParser struct {
	src string
	pos int
}

// parse renders until end of input or an unbalanced closing brace at
// depth > 0 (the caller consumes it).
func (p *texParser) parse(depth int) (string, error) {
	var b strings.Builder

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '}':
			if depth > 0 {
				return b.String(), nil
			}
			return "", fmt.Errorf("unbalanced closing brace at %d", p.pos)
		case '{':
			p.pos++
			inner, err := p.parse(depth + 1)
			if err != nil {
				return "", err
			}
			if err := p.expect('}'); err != nil {
				return "", err
			}
			b.WriteString(inner)
		case '\\':
			out, err := p.parseCommand()
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		case '^':
			p.pos++
			out, err := p.parseScript(superscripts, "^")
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		case '_':
			p.pos++
			out, err := p.parseScript(subscripts, "_")
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	if depth > 0 {
		return "", fmt.Errorf("missing closing brace")
	}
	return b.String(), nil
}

// parseCommand handles a backslash command starting at p.pos.
func (p *texParser) parseCommand() (string, error) {
	p.pos++ // consume backslash
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		// Escaped single character, e.g. \{ or \$.
		if p.pos < len(p.src) {
			p.pos++
			return p.src[p.pos-1 : p.pos], nil
		}
		return "", fmt.Errorf("dangling backslash")
	}

	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseGroup()
		if err != nil {
			return "", err
		}
		den, err := p.parseGroup()
		if err != nil {
			return "", err
		}
		return group(num) + "/" + group(den), nil
	case "sqrt":
		arg, err := p.parseGroup()
		if err != nil {
			return "", err
		}
		return "√" + group(arg), nil
	case "text", "mathrm", "operatorname":
		arg, err := p.parseGroup()
		if err != nil {
			return "", err
		}
		return arg, nil
	case "left", "right":
		// Sizing commands: the delimiter that follows renders itself.
		return "", nil
	}

	if sym, ok := symbols[name]; ok {
		return sym, nil
	}
	return "", fmt.Errorf("unsupported command \\%s", name)
}

// parseGroup parses either a braced group or a single character operand.
func (p *texParser) parseGroup() (string, error) {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("missing operand")
	}
	if p.src[p.pos] == '{' {
		p.pos++
		inner, err := p.parse(1)
		if err != nil {
			return "", err
		}
		if err := p.expect('}'); err != nil {
			return "", err
		}
		return inner, nil
	}
	if p.src[p.pos] == '\\' {
		return p.parseCommand()
	}
	p.pos++
	return p.src[p.pos-1 : p.pos], nil
}

// parseScript renders a superscript or subscript operand, translating to
// dedicated Unicode characters when every rune has one.
func (p *texParser) parseScript(table map[rune]rune, marker string) (string, error) {
	arg, err := p.parseGroup()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range arg {
		t, ok := table[r]
		if !ok {
			return marker + group(arg), nil
		}
		b.WriteRune(t)
	}
	return b.String(), nil
}

func (p *texParser) expect(c byte) error {
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *texParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// group parentheses a rendered operand when it is longer than one rune, so
// \frac{a+b}{2} reads as (a+b)/2 rather than a+b/2.
func group(s string) string {
	if len([]rune(s)) <= 1 {
		return s
	}
	return "(" + s + ")"
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// =============================================================================
// SYMBOL TABLES
// =============================================================================

var symbols = map[string]string{
	// Arrows
	"rightarrow":     "→",
	"to":             "→",
	"leftarrow":      "←",
	"gets":           "←",
	"leftrightarrow": "↔",
	"Rightarrow":     "⇒",
	"implies":        "⇒",
	"Leftarrow":      "⇐",
	"Leftrightarrow": "⇔",
	"iff":            "⇔",
	"mapsto":         "↦",

	// Greek (lowercase)
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",

	// Greek (uppercase)
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Phi": "Φ",
	"Psi": "Ψ", "Omega": "Ω",

	// Operators and relations
	"sum": "∑", "prod": "∏", "int": "∫",
	"infty": "∞", "partial": "∂", "nabla": "∇",
	"pm": "±", "mp": "∓", "times": "×", "div": "÷", "cdot": "·",
	"le": "≤", "leq": "≤", "ge": "≥", "geq": "≥",
	"ne": "≠", "neq": "≠", "approx": "≈", "equiv": "≡",
	"sim": "∼", "propto": "∝",
	"in": "∈", "notin": "∉", "subset": "⊂", "supset": "⊃",
	"cup": "∪", "cap": "∩",
	"forall": "∀", "exists": "∃", "emptyset": "∅",
	"circ": "∘", "degree": "°",
	"ldots": "…", "cdots": "⋯", "dots": "…",
	"quad": "  ", "qquad": "    ",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ', 'o': 'ₒ', 'x': 'ₓ', 'n': 'ₙ',
}
