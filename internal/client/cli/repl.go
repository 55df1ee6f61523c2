package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Social(ctx context.Context, provider string) error
	TogglePassword(ctx context.Context) error
	Catalog(ctx context.Context, filter string) error
	Session(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from in and dispatches them to a until EOF,
// "exit" or "quit". Command errors are printed and do not end the loop.
//
//	Not logged in:  help, login, register, social <provider>, toggle,
//	                catalog [filter], session, exit
//	Logged in:      help, catalog [filter], session, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "lostfound %s> ", statusFn())

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(out, "Available commands: catalog [all|lost|found], session, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, register, social <google|facebook>, toggle, catalog [all|lost|found], session, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "social":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: social <google|facebook>")
				continue
			}
			cmdErr = a.Social(ctx, args[0])

		case "toggle":
			cmdErr = a.TogglePassword(ctx)

		case "catalog", "list":
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			cmdErr = a.Catalog(ctx, filter)

		case "session":
			cmdErr = a.Session(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
