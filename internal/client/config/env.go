package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "JUKE_"

type envConfig struct {
	APIBaseURL           string        `env:"API_BASE_URL"`
	App                  string        `env:"APP"`
	DatabasePath         string        `env:"DATABASE_PATH"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT"`
	SearchDebounce       time.Duration `env:"SEARCH_DEBOUNCE"`
	RegistrationDisabled bool          `env:"REGISTRATION_DISABLED"`
	LogLevel             string        `env:"LOG_LEVEL"`
	LogBackend           string        `env:"LOG_BACKEND"`
	LogFormat            string        `env:"LOG_FORMAT"`
}

// parseEnv overlays cfg with JUKE_* variables. Unset variables leave the
// current value alone; malformed ones panic.
func parseEnv(cfg *Config) {
	ec := envConfig{
		APIBaseURL:           cfg.APIBaseURL,
		App:                  cfg.App,
		DatabasePath:         cfg.DatabasePath,
		RequestTimeout:       cfg.RequestTimeout,
		SearchDebounce:       cfg.SearchDebounce,
		RegistrationDisabled: cfg.RegistrationDisabled,
		LogLevel:             cfg.LogLevel,
		LogBackend:           cfg.LogBackend,
		LogFormat:            cfg.LogFormat,
	}
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	cfg.APIBaseURL = ec.APIBaseURL
	cfg.App = ec.App
	cfg.DatabasePath = ec.DatabasePath
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.SearchDebounce = ec.SearchDebounce
	cfg.RegistrationDisabled = ec.RegistrationDisabled
	cfg.LogLevel = ec.LogLevel
	cfg.LogBackend = ec.LogBackend
	cfg.LogFormat = ec.LogFormat
}
