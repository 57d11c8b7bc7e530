package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key/value args are attached as
// event fields in the order given.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func newZerologFromOptions(w io.Writer, opts Options) (*ZerologLogger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lv, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("unknown log level %q", opts.Level)
		}
		level = lv
	}

	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "text":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return NewZerologLogger(l), nil
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debug().Ctx(ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Ctx(ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Ctx(ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Ctx(ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(args).Logger()}
}
