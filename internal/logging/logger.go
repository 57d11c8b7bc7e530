// Package logging defines a minimal structured-logging interface used across
// the client. Implementations wrap slog or zerolog; New picks one from config.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "path", path, "status", status)
type Logger interface {
	// Debug logs verbose diagnostics (request traces, state changes).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported backends.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// Options selects and tunes a Logger backend.
//
// Level is one of debug, info, warn, error. Format is "text" or "json"; the
// zerolog backend renders "text" through its console writer.
type Options struct {
	Backend string
	Level   string
	Format  string
}

// New builds a Logger writing to w according to opts.
func New(w io.Writer, opts Options) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		return newSlogFromOptions(w, opts)
	case BackendZerolog:
		return newZerologFromOptions(w, opts)
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }
