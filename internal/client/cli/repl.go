package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/embario/jukeclient/internal/client/client"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Me(ctx context.Context) error
	Edit(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	People(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Genres(ctx context.Context) error
	Genre(ctx context.Context, args []string) error
	Artist(ctx context.Context, args []string) error
	Album(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: register, verify <user_id> <timestamp> <signature>, resend, login, whoami, help, exit"
	helpSignedIn  = "Available commands: whoami, me, edit, profile <username>, people <query>, search [query], genres, genre <id>, artist <id|spotify_id>, album <id|spotify_id>, logout, help, exit"
)

// runREPL reads a line from reader, parses the first token as the command and
// dispatches to a. Handler errors are shown with client.Message so the user
// only sees the friendly text. The loop exits on EOF, on ctx cancellation or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "juke%s> ", prefixSpace(statusFn()))

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
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
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}
		case "register":
			err = a.Register(ctx)
		case "verify":
			err = a.Verify(ctx, args)
		case "resend":
			err = a.Resend(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "me":
			err = a.Me(ctx)
		case "edit":
			err = a.Edit(ctx)
		case "profile":
			err = a.Profile(ctx, args)
		case "people":
			err = a.People(ctx, args)
		case "search", "s":
			err = a.Search(ctx, args)
		case "genres":
			err = a.Genres(ctx)
		case "genre":
			err = a.Genre(ctx, args)
		case "artist":
			err = a.Artist(ctx, args)
		case "album":
			err = a.Album(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintln(w, client.Message(err))
		}
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
