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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Jobs(ctx context.Context) error
	Filter(ctx context.Context) error
	NoFilter(ctx context.Context) error
	ShowJob(ctx context.Context, id string) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, jobID string) error
	Apps(ctx context.Context) error
	Review(ctx context.Context, jobID string) error
	SetStatus(ctx context.Context, appID, status string) error
	Withdraw(ctx context.Context, appID string) error
	Users(ctx context.Context) error
	ReloadAll(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the jobport CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own outcome lines. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("jobport %s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: jobs, filter, nofilter, job <id>, post, edit <id>, delete <id>, apply <id>, apps, review <jobid>, status <appid> <pending|accepted|rejected>, withdraw <appid>, users, reload, whoami, logout, exit")
			} else {
				printlnFn("Available commands: jobs, filter, nofilter, job <id>, register, login, reload, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "jobs":
			_ = a.Jobs(ctx)

		case "filter":
			_ = a.Filter(ctx)

		case "nofilter":
			_ = a.NoFilter(ctx)

		case "job":
			if len(args) == 0 {
				printlnFn("Usage: job <id>")
				continue
			}
			_ = a.ShowJob(ctx, args[0])

		case "post":
			_ = a.Post(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "apply":
			if len(args) == 0 {
				printlnFn("Usage: apply <jobid>")
				continue
			}
			_ = a.Apply(ctx, args[0])

		case "apps":
			_ = a.Apps(ctx)

		case "review":
			if len(args) == 0 {
				printlnFn("Usage: review <jobid>")
				continue
			}
			_ = a.Review(ctx, args[0])

		case "status":
			if len(args) < 2 {
				printlnFn("Usage: status <appid> <pending|accepted|rejected>")
				continue
			}
			_ = a.SetStatus(ctx, args[0], args[1])

		case "withdraw":
			if len(args) == 0 {
				printlnFn("Usage: withdraw <appid>")
				continue
			}
			_ = a.Withdraw(ctx, args[0])

		case "users":
			_ = a.Users(ctx)

		case "reload":
			_ = a.ReloadAll(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
