package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	VerifyEmail(ctx context.Context, args []string) error
	ResendEmail(ctx context.Context) error
	Countries(ctx context.Context) error
	SendPhone(ctx context.Context) error
	VerifyPhone(ctx context.Context, args []string) error
	ResendPhone(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Goto(ctx context.Context, target string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, verify-email [code], resend-email, countries, send-phone, " +
		"verify-phone [code], resend-phone, login, forgot, goto <route>, status, exit"
	helpLoggedIn = "Available commands: change-password, status, goto <route>, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the authflow CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx ends, or when the user types "exit"
// or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//   - help                 show available commands
//   - register             create an account
//   - verify-email [code]  confirm the emailed code
//   - resend-email         request a new email code
//   - countries            list country dial prefixes
//   - send-phone           register a phone number
//   - verify-phone [code]  confirm the SMS code
//   - resend-phone         request a new SMS code
//   - login                authenticate
//   - forgot               request a password reset
//   - change-password      replace a server-issued password
//   - goto <route>         jump to a step, e.g. /verify-email?username=bob
//   - status               show the current step and session
//   - logout               forget the session
//   - exit | quit          leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("af %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "verify-email":
			_ = a.VerifyEmail(ctx, args)

		case "resend-email":
			_ = a.ResendEmail(ctx)

		case "countries":
			_ = a.Countries(ctx)

		case "send-phone":
			_ = a.SendPhone(ctx)

		case "verify-phone":
			_ = a.VerifyPhone(ctx, args)

		case "resend-phone":
			_ = a.ResendPhone(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "change-password":
			_ = a.ChangePassword(ctx)

		case "goto":
			if len(args) != 1 {
				printlnFn("Usage: goto <route>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
