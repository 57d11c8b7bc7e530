package config

import (
	"encoding/json"
	"os"

	"github.com/embario/jukeclient/internal/flagx"
	"github.com/embario/jukeclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be strings like "400ms" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	App                  string         `json:"app"`
	DatabasePath         string         `json:"database_path"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	SearchDebounce       timex.Duration `json:"search_debounce"`
	RegistrationDisabled bool           `json:"registration_disabled"`
	LogLevel             string         `json:"log_level"`
	LogBackend           string         `json:"log_backend"`
	LogFormat            string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config. Keys missing from
// the file keep their current values. Read and decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		APIBaseURL:           cfg.APIBaseURL,
		App:                  cfg.App,
		DatabasePath:         cfg.DatabasePath,
		RequestTimeout:       timex.Duration{Duration: cfg.RequestTimeout},
		SearchDebounce:       timex.Duration{Duration: cfg.SearchDebounce},
		RegistrationDisabled: cfg.RegistrationDisabled,
		LogLevel:             cfg.LogLevel,
		LogBackend:           cfg.LogBackend,
		LogFormat:            cfg.LogFormat,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.APIBaseURL = jc.APIBaseURL
	cfg.App = jc.App
	cfg.DatabasePath = jc.DatabasePath
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.SearchDebounce = jc.SearchDebounce.Duration
	cfg.RegistrationDisabled = jc.RegistrationDisabled
	cfg.LogLevel = jc.LogLevel
	cfg.LogBackend = jc.LogBackend
	cfg.LogFormat = jc.LogFormat
}
