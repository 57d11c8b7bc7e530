package config

import (
	"flag"

	"github.com/embario/jukeclient/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-u string            API base URL
//	-app string          app namespace (juke, shotclock, tunetrivia)
//	-db string           SQLite database path
//	-t duration          request timeout
//	-debounce duration   search debounce delay
//	-no-register         disable account registration
//	-log-level string    debug, info, warn or error
//	-log-backend string  slog or zerolog
//	-log-format string   text or json
//
// args are filtered with flagx.FilterArgs first so that -c/-config and any
// flags owned by other components do not reach this FlagSet.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args,
		"u", "app", "db", "t", "debounce", "no-register",
		"log-level", "log-backend", "log-format",
	)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.App, "app", cfg.App, "app namespace")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the local SQLite database")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.SearchDebounce, "debounce", cfg.SearchDebounce, "search debounce delay")
	fs.BoolVar(&cfg.RegistrationDisabled, "no-register", cfg.RegistrationDisabled, "disable account registration")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
