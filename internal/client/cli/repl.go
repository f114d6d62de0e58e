package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Documents(ctx context.Context, args []string) error
	Audits(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the LegeClair CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not authenticated:
//	  - help             — show available commands
//	  - register         — create an account
//	  - login            — authenticate (with optional "remember me")
//	  - go <path>        — navigate (guarded)
//	  - exit | quit      — leave the program
//
//	Authenticated:
//	  - help             — show available commands
//	  - docs <args>      — documents view commands (see Documents)
//	  - audits <args>    — audits view commands (see Audits)
//	  - whoami           — show the current user
//	  - profile          — update profile fields
//	  - go <path>        — navigate (guarded)
//	  - logout           — log out and wipe the stored session
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: docs, audits, whoami, profile, go <path>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, go <path>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "docs", "documents":
			_ = a.Documents(ctx, args)

		case "audits":
			_ = a.Audits(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
