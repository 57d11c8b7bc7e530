// Package config loads runtime configuration for the Juke CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. JUKE_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.juke.example",
//	  "app": "juke",
//	  "database_path": "juke.db",
//	  "request_timeout": "30s",
//	  "search_debounce": "400ms",
//	  "registration_disabled": false,
//	  "log_level": "warn",
//	  "log_backend": "slog",
//	  "log_format": "text"
//	}
//
// # Environment
//
//	JUKE_API_BASE_URL, JUKE_APP, JUKE_DATABASE_PATH, JUKE_REQUEST_TIMEOUT,
//	JUKE_SEARCH_DEBOUNCE, JUKE_REGISTRATION_DISABLED, JUKE_LOG_LEVEL,
//	JUKE_LOG_BACKEND, JUKE_LOG_FORMAT
package config
