package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":          "https://api.juke.example",
		"search_debounce":       "250ms",
		"request_timeout":       int64(2 * time.Second),
		"registration_disabled": true,
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "https://api.juke.example", cfg.APIBaseURL)
		assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.RegistrationDisabled)
		assert.Equal(t, "juke", cfg.App, "missing keys keep defaults")
	})

	t.Run("no -c flag → no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "http://defaults:1234", SearchDebounce: time.Second}
		parseJson(cfg, []string{"-u", "http://other"})

		assert.Equal(t, "http://defaults:1234", cfg.APIBaseURL)
		assert.Equal(t, time.Second, cfg.SearchDebounce)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", bad}) })
	})
}
