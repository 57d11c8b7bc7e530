// Package cli provides the interactive Juke command-line client.
//
// The App owns no wiring of its own: cmd/cli builds the services and hands
// them over. Run subscribes to the session so the prompt always shows who is
// signed in, then reads commands until the user exits.
//
// Commands:
//   - register, login, logout, whoami
//   - me, edit, profile <username>, people <query>
//   - search [query], genres
//   - help, exit | quit
//
// "search" without a query enters live mode: every line is a new query, and
// only the last one typed within the debounce window is sent.
package cli
