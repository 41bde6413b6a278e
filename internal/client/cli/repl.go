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
	WhoAmI(ctx context.Context) error
	Stocks(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Stock(ctx context.Context, args []string) error
	Filings(ctx context.Context, args []string) error
	Document(ctx context.Context, args []string) error
	Portfolio(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on a. The loop exits on scanner EOF or on "exit"/"quit".
// Handler errors are ignored here; handlers report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sf %s> ", statusFn()))
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
				printlnFn("Available commands: stocks [page], search <text>, stock <symbol>, filings <symbol>, doc <id>, (p)ortfolio, add <symbol> <shares>, remove <symbol>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, stocks [page], search <text>, stock <symbol>, filings <symbol>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "stocks":
			_ = a.Stocks(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "stock":
			_ = a.Stock(ctx, args)

		case "filings":
			_ = a.Filings(ctx, args)

		case "doc":
			_ = a.Document(ctx, args)

		case "p", "portfolio":
			_ = a.Portfolio(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "remove":
			_ = a.Remove(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
