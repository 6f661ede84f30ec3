// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question handler for the mathtutor CLI.
//
// Command: ask
// Short:   Ask one question and print the answer
//
// Examples:
//   mathtutor ask what is 12 * 4
//   mathtutor ask "how do I add fractions" -q
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/mathtutor-tui/internal/config"
)

// HandleAsk answers a single question and exits.
func HandleAsk(args Args) {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: mathtutor ask <question>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if args.NoColor {
		DisableColor()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t := NewTutor(cfg)
	answer, err := t.Reply(ctx, nil, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	render := NewAnswerRenderer(cfg)
	fmt.Println(render(answer))
}
