// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for mathtutor.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdThreads
	CmdExport
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	NoColor bool

	// Command-specific
	Query     string
	ThreadID  string
	Format    string
	OutputDir string

	// Remaining raw args for subcommand parsing
	Raw []string

	// Subcommand (e.g. "list" for "threads list")
	Subcommand string
}

// Parse parses os.Args and returns the command to run.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No arguments starts the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parser := NewArgParser(remaining)
		parsedArgs.Query = strings.Join(parser.PositionalFrom(0), " ")
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "threads", "thread", "t":
		parser := NewArgParser(remaining)
		parsedArgs.Subcommand = parser.Subcommand()
		parsedArgs.ThreadID = parser.Positional(1)
		return CmdThreads, parsedArgs

	case "export":
		parser := NewArgParser(remaining)
		parsedArgs.ThreadID = parser.Positional(0)
		parsedArgs.Format = parser.FlagOrDefault("format", "")
		parsedArgs.OutputDir = parser.Flag("out")
		return CmdExport, parsedArgs

	case "config":
		parser := NewArgParser(remaining)
		parsedArgs.Subcommand = parser.Subcommand()
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown word: treat the whole line as a question
		parsedArgs.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	parsed := Args{}
	remaining := make([]string, 0, len(args))

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "--verbose":
			parsed.Verbose = true
		case "--no-color":
			parsed.NoColor = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args) {
	fmt.Printf("mathtutor %s\n", Version)
	if args.Verbose {
		fmt.Printf("  commit:  %s\n", GitCommit)
		fmt.Printf("  built:   %s\n", BuildDate)
		fmt.Printf("  go:      %s\n", runtime.Version())
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
}

// HandleHelp prints usage information.
func HandleHelp() {
	fmt.Print(`mathtutor - terminal math tutoring chat

Usage:
  mathtutor                     Start the TUI (default)
  mathtutor ask <question>      Ask one question and print the answer
  mathtutor chat                Interactive chat without the TUI
  mathtutor threads list        List saved threads
  mathtutor threads show <id>   Print a thread
  mathtutor threads delete <id> Delete a thread
  mathtutor export <id>         Export a thread to a file
  mathtutor config show         Print the active configuration
  mathtutor config init         Write a default config file
  mathtutor version             Print version information

Export flags:
  --format markdown|json        Output format (default from config)
  --out DIR                     Output directory (default from config)

Global flags:
  -q, --quiet                   Minimal output
  --verbose                     Verbose output
  --no-color                    Disable colored output

Examples:
  mathtutor ask what is 12 * 4
  mathtutor export thr_a1b2c3 --format json
`)
}
