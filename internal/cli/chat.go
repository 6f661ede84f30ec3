// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat handler for the mathtutor CLI.
//
// USABILITY: Markdown rendering and history for better CLI experience
//
// Handles the "mathtutor chat" command, a readline-style REPL for
// terminals where the full TUI is unwanted or unavailable. The session
// persists into the same thread store the TUI uses.
//
// Interactive Commands (during chat):
//   /new                Start a new thread
//   /threads            List saved threads
//   /title <text>       Rename the current thread
//   /help, /h           Show available commands
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/mathtutor-tui/internal/config"
	"github.com/jeranaias/mathtutor-tui/internal/storage"
	"github.com/jeranaias/mathtutor-tui/internal/thread"
	"github.com/jeranaias/mathtutor-tui/internal/tutor"
	"github.com/jeranaias/mathtutor-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// =============================================================================
// CHAT REPL
// =============================================================================

// HandleChat runs the interactive REPL.
func HandleChat(args Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if args.NoColor {
		DisableColor()
	}

	store, err := OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	st := store.LoadState()
	th := currentOrNewThread(&st)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	// Persist input history next to the state
	historyPath := ""
	if dir, derr := cfg.StateDir(); derr == nil {
		historyPath = filepath.Join(dir, "chat_history")
		if f, ferr := os.Open(historyPath); ferr == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	render := NewAnswerRenderer(cfg)
	t := NewTutor(cfg)

	if !args.Quiet {
		fmt.Println(bannerStyle.Render("mathtutor chat") + " " + infoStyle.Render("v"+Version))
		fmt.Println(infoStyle.Render("thread: " + th.Title + "   /help for commands"))
		fmt.Println()
	}

	for {
		input, lerr := line.Prompt(promptStyle.Render("? "))
		if lerr != nil {
			// liner.ErrPromptAborted on Ctrl+C, io.EOF on Ctrl+D
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleChatCommand(input, &st, &th, store); quit {
				break
			}
			continue
		}

		th = askInThread(t, render, th, input)
		st.Threads[th.ID] = th
		st.CurrentThreadID = th.ID
		store.SaveStateDebounced(st)
	}

	if historyPath != "" {
		if f, ferr := os.Create(historyPath); ferr == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}
	_ = store.Flush()
}

// askInThread sends one question, prints the streamed answer, and returns
// the thread with both messages appended.
func askInThread(t tutor.Tutor, render func(string) string, th thread.Thread, question string) thread.Thread {
	if th.MessageCount() == 0 {
		userMsg := thread.NewMessage(thread.RoleUser, question)
		th = thread.Append(th, userMsg)
		th = thread.Rename(th, userMsg.Preview(40))
	} else {
		th = thread.Append(th, thread.NewMessage(thread.RoleUser, question))
	}

	answer, err := t.Reply(context.Background(), th.Messages, question)
	if err != nil {
		fmt.Println(styles.RenderError("reply failed: " + err.Error()))
		return th
	}

	fmt.Println()
	fmt.Println(render(answer))
	fmt.Println()

	return thread.Append(th, thread.NewMessage(thread.RoleAssistant, answer))
}

// handleChatCommand processes a /command. Returns true to exit the REPL.
func handleChatCommand(input string, st *thread.State, th *thread.Thread, store *storage.ThreadStore) bool {
	cmd, rest, _ := strings.Cut(input, " ")

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(infoStyle.Render(
			"/new start a new thread, /threads list threads,\n" +
				"/title <text> rename, /quit exit"))

	case "/new":
		*th = thread.New()
		st.Threads[th.ID] = *th
		st.CurrentThreadID = th.ID
		store.SaveStateDebounced(*st)
		fmt.Println(infoStyle.Render("started a new thread"))

	case "/threads":
		for _, t := range storage.SortedThreads(*st) {
			marker := "  "
			if t.ID == st.CurrentThreadID {
				marker = "> "
			}
			fmt.Printf("%s%s  %s (%d messages)\n", marker, t.ID, t.Title, t.MessageCount())
		}

	case "/title":
		title := strings.TrimSpace(rest)
		if title == "" {
			fmt.Println(infoStyle.Render("usage: /title <text>"))
			break
		}
		*th = thread.Rename(*th, title)
		st.Threads[th.ID] = *th
		store.SaveStateDebounced(*st)
		fmt.Println(infoStyle.Render("renamed thread"))

	default:
		fmt.Println(infoStyle.Render("unknown command " + cmd + ", /help for commands"))
	}

	return false
}

// currentOrNewThread resumes the saved current thread, or starts a new one.
func currentOrNewThread(st *thread.State) thread.Thread {
	if th, ok := st.Threads[st.CurrentThreadID]; ok {
		return th
	}
	th := thread.New()
	if st.Threads == nil {
		st.Threads = map[string]thread.Thread{}
	}
	st.Threads[th.ID] = th
	st.CurrentThreadID = th.ID
	return th
}
