package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/roomsync/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	Demo(ctx context.Context) error
	SignOut(ctx context.Context) error
	Status(ctx context.Context) error
	ShowMode(ctx context.Context) error
	Recheck(ctx context.Context) error
	CompleteProfile(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Favorite(ctx context.Context, roomID string) error
	View(ctx context.Context, roomID string) error
	Favorites(ctx context.Context) error
	Viewed(ctx context.Context) error
	Sync(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Command errors are rendered with common.UserMessage; the loop itself
// never stops on a failed command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rs> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
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
			if a.isLoggedIn() {
				printlnFn("Available commands: status, mode, recheck, complete, profile, editprofile, fav <id>, view <id>, favorites, viewed, sync, signout, exit")
			} else {
				printlnFn("Available commands: signin, signup, demo, status, mode, recheck, exit")
			}

		case "signin", "login":
			cmdErr = a.SignIn(ctx)

		case "signup", "register":
			cmdErr = a.SignUp(ctx)

		case "demo":
			cmdErr = a.Demo(ctx)

		case "signout", "logout":
			cmdErr = a.SignOut(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "mode":
			cmdErr = a.ShowMode(ctx)

		case "recheck":
			cmdErr = a.Recheck(ctx)

		case "complete":
			cmdErr = a.CompleteProfile(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "editprofile":
			cmdErr = a.EditProfile(ctx)

		case "fav", "view":
			if len(args) != 1 {
				printlnFn("Usage:", cmd, "<room id>")
				continue
			}
			if cmd == "fav" {
				cmdErr = a.Favorite(ctx, args[0])
			} else {
				cmdErr = a.View(ctx, args[0])
			}

		case "favorites":
			cmdErr = a.Favorites(ctx)

		case "viewed":
			cmdErr = a.Viewed(ctx)

		case "sync":
			cmdErr = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", common.UserMessage(cmdErr))
		}

		if err != nil {
			return
		}
	}
}
