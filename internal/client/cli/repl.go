package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	Location(ctx context.Context, args []string) error
	Deactivate(ctx context.Context) error
	Visit(ctx context.Context, args []string) error
	ClearError(ctx context.Context) error
}

// runREPL reads commands from r until EOF, "exit"/"quit" or ctx is done.
//
//	Signed out: help, signup, login, status, visit <path>, clear, exit
//	Signed in:  help, profile, set <field> <value>, location <city> [country],
//	            passwd, deactivate, logout, status, visit <path>, clear, exit
//
// Handlers report their own errors, the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "soulara %s> ", statusFn())

		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: profile, set, location, passwd, deactivate, logout, status, visit, clear, exit")
			} else {
				fmt.Fprintln(w, "Available commands: signup, login, status, visit, clear, exit")
			}
		case "signup", "register":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "status":
			_ = a.Status(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "set":
			_ = a.Set(ctx, args)
		case "location":
			_ = a.Location(ctx, args)
		case "passwd":
			_ = a.Passwd(ctx)
		case "deactivate":
			_ = a.Deactivate(ctx)
		case "visit":
			_ = a.Visit(ctx, args)
		case "clear":
			_ = a.ClearError(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
