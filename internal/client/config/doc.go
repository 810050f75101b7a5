// Package config loads runtime configuration for the Soulara CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   Auth API base URL
//	-w string   web front-end base URL (cookies are scoped to its host)
//	-f string   SQLite file for durable storage and cookies (":memory:" for none)
//	-t int      request timeout (seconds)
//	-s          mark session cookies Secure
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "web_base_url": "http://localhost:3000",
//	  "database_file": "soulara.db",
//	  "request_timeout": "15s",
//	  "secure_cookies": false,
//	  "log_level": "warn"
//	}
package config
