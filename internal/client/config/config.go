package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/embario/jukeclient/internal/common"
)

// Config holds runtime settings for the Juke CLI.
//
// Units: RequestTimeout and SearchDebounce are time.Duration values.
type Config struct {
	APIBaseURL           string
	App                  string
	DatabasePath         string
	RequestTimeout       time.Duration
	SearchDebounce       time.Duration
	RegistrationDisabled bool
	LogLevel             string
	LogBackend           string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.App = common.AppJuke
	c.DatabasePath = "juke.db"
	c.RequestTimeout = 30 * time.Second
	c.SearchDebounce = 400 * time.Millisecond
	c.RegistrationDisabled = false
	c.LogLevel = "warn"
	c.LogBackend = "slog"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), JUKE_* environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	known := []string{common.AppJuke, common.AppShotClock, common.AppTuneTrivia}
	if !slices.Contains(known, c.App) {
		return fmt.Errorf("unknown app %q, want one of %v", c.App, known)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.RequestTimeout < 0 || c.SearchDebounce < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
