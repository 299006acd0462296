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
	Search(ctx context.Context, query string) error
	More(ctx context.Context) error
	Save(ctx context.Context, arg string) error
	Saved(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the newsexplorer client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Forms read their answers from the same
// reader, so prompts and commands never race for buffered input. The loop
// exits on EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help             show available commands
//	  - search <words>   search news from the last week
//	  - more             show three more results
//	  - exit | quit      leave the program
//
//	Not logged in:
//	  - register         create an account
//	  - login            sign in
//
//	Logged in:
//	  - save <n>         save or unsave search result n
//	  - saved            list saved articles
//	  - delete <n>       remove saved article n
//	  - whoami           show the current user
//	  - logout           sign out
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("news %s> ", statusFn()))
		line, err := reader.ReadString('\n')
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
				printlnFn("Available commands: search, more, save <n>, saved, delete <n>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: search, more, register, login, exit")
			}

		case "register", "signup":
			_ = a.Register(ctx)

		case "login", "signin":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "search", "s":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "more":
			_ = a.More(ctx)

		case "save":
			if len(args) != 1 {
				printlnFn("Usage: save <n>")
				continue
			}
			_ = a.Save(ctx, args[0])

		case "saved":
			_ = a.Saved(ctx)

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <n>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
