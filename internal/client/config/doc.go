// Package config loads runtime configuration for the lostfound terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c, -config or --config.
//  3. Environment variables prefixed with LOSTFOUND_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   path of the session database
//	-f string   log format: text or json
//	-t int      simulated authentication delay (milliseconds)
//
// # JSON schema
//
// Durations are timex.Duration values, so they can be strings like "1.5s"
// or integer nanoseconds:
//
//	{
//	  "store_path": "lostfound.db",
//	  "log_format": "json",
//	  "auth_delay": "1.5s",
//	  "notification_duration": "3s"
//	}
//
// # Environment
//
// Every field can be set through LOSTFOUND_<NAME>, e.g.
// LOSTFOUND_STORE_PATH or LOSTFOUND_AUTH_DELAY=2s.
package config
