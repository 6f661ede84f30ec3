// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tutor produces tutoring replies for the chat view.
package tutor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/thread"
)

// =============================================================================
// TUTOR INTERFACE
// =============================================================================

// StreamChunk is one piece of a streamed reply.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// StreamCallback receives chunks as a reply streams.
type StreamCallback func(chunk StreamChunk)

// Tutor produces replies to student questions.
type Tutor interface {
	// Reply returns a complete answer to the question given the
	// conversation so far.
	Reply(ctx context.Context, history []thread.Message, question string) (string, error)

	// ReplyStream delivers the answer incrementally through the callback.
	// The final chunk has Done set.
	ReplyStream(ctx context.Context, history []thread.Message, question string, callback StreamCallback) error
}

// =============================================================================
// LOCAL TUTOR
// =============================================================================

// LocalTutor answers from built-in templates without a network backend.
// It evaluates simple arithmetic directly and falls back to guidance
// templates keyed on topic words.
type LocalTutor struct {
	// StreamDelay is the pause between streamed words. Zero streams
	// instantly, which the tests rely on.
	StreamDelay time.Duration
}

// NewLocalTutor creates a tutor with a natural streaming pace.
func NewLocalTutor() *LocalTutor {
	return &LocalTutor{StreamDelay: 20 * time.Millisecond}
}

// Reply returns a complete answer to the question.
func (lt *LocalTutor) Reply(ctx context.Context, history []thread.Message, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return lt.compose(question), nil
}

// ReplyStream delivers the answer word by word.
func (lt *LocalTutor) ReplyStream(ctx context.Context, history []thread.Message, question string, callback StreamCallback) error {
	answer := lt.compose(question)
	words := strings.SplitAfter(answer, " ")

	for _, w := range words {
		select {
		case <-ctx.Done():
			callback(StreamChunk{Done: true, Err: ctx.Err()})
			return ctx.Err()
		default:
		}

		callback(StreamChunk{Content: w})
		if lt.StreamDelay > 0 {
			time.Sleep(lt.StreamDelay)
		}
	}

	callback(StreamChunk{Done: true})
	return nil
}

// =============================================================================
// ANSWER COMPOSITION
// =============================================================================

// compose builds the answer text for a question.
func (lt *LocalTutor) compose(question string) string {
	q := strings.TrimSpace(question)
	if q == "" {
		return "Ask me a math question and I will walk you through it."
	}

	if expr, result, ok := evalArithmetic(q); ok {
		return "Let's work through it.\n" +
			"We evaluate $" + expr + " = " + result + "$.\n" +
			"So the answer is $" + result + "$."
	}

	lower := strings.ToLower(q)
	for _, tmpl := range topicTemplates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(lower, kw) {
				return tmpl.answer
			}
		}
	}

	return "Good question. Break it into smaller steps:\n" +
		"First identify what is known and what is asked.\n" +
		"Then pick the rule that connects them, and apply it one step at a time."
}

// topicTemplate maps topic keywords to a canned explanation.
type topicTemplate struct {
	keywords []string
	answer   string
}

var topicTemplates = []topicTemplate{
	{
		keywords: []string{"fraction", "denominator", "numerator"},
		answer: "To add fractions, first find a common denominator.\n" +
			"For example $\\frac{1}{2} + \\frac{1}{3} = \\frac{3}{6} + \\frac{2}{6} = \\frac{5}{6}$.\n" +
			"Multiply each fraction's top and bottom by the factor that brings its denominator to the common one.",
	},
	{
		keywords: []string{"quadratic", "x^2", "roots"},
		answer: "A quadratic $ax^2 + bx + c = 0$ is solved with the quadratic formula:\n" +
			"$x = \\frac{-b \\pm \\sqrt{b^2 - 4ac}}{2a}$.\n" +
			"The discriminant $b^2 - 4ac$ tells you how many real roots to expect.",
	},
	{
		keywords: []string{"limit", "derivative", "differentiate"},
		answer: "A derivative is a limit of slopes:\n" +
			"$f'(x) = \\lim_{h \\to 0} \\frac{f(x+h) - f(x)}{h}$.\n" +
			"As $h \\rightarrow 0$ the secant line approaches the tangent line.",
	},
	{
		keywords: []string{"pythagor", "hypotenuse", "right triangle"},
		answer: "In a right triangle the Pythagorean theorem relates the sides:\n" +
			"$a^2 + b^2 = c^2$ where $c$ is the hypotenuse.\n" +
			"Solve for the unknown side, then take the square root.",
	},
}

// =============================================================================
// ARITHMETIC EVALUATION
// =============================================================================

// evalArithmetic recognizes a single binary operation on integers, such as
// "what is 12 * 4" or "7+8?". Returns the cleaned expression and result.
func evalArithmetic(q string) (expr, result string, ok bool) {
	s := strings.ToLower(q)
	for _, prefix := range []string{"what is", "what's", "compute", "calculate", "evaluate"} {
		s = strings.TrimPrefix(strings.TrimSpace(s), prefix)
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "?"))

	for _, op := range []string{"+", "-", "*", "x", "/"} {
		idx := strings.Index(s, op)
		if idx <= 0 || idx >= len(s)-1 {
			continue
		}
		left, lerr := strconv.Atoi(strings.TrimSpace(s[:idx]))
		right, rerr := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
		if lerr != nil || rerr != nil {
			continue
		}

		var value int
		display := op
		switch op {
		case "+":
			value = left + right
		case "-":
			value = left - right
		case "*", "x":
			value = left * right
			display = "\\times"
		case "/":
			if right == 0 {
				return "", "", false
			}
			if left%right != 0 {
				continue
			}
			value = left / right
			display = "\\div"
		}

		expr = strconv.Itoa(left) + " " + display + " " + strconv.Itoa(right)
		return expr, strconv.Itoa(value), true
	}

	return "", "", false
}
