// Package config handles configuration for the Auth API server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Soulara Auth API.
//
// Fields:
//   - Address: bind address of the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps users in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty generates a
//     random key at start up, so tokens do not survive a restart.
//   - AccessTokenValidity: access token lifetime.
//   - CORSOrigins: origins allowed to call the API from a browser.
type Config struct {
	Address             string
	DatabaseDSN         string
	SecretKey           string
	AccessTokenValidity time.Duration
	CORSOrigins         []string
	ShutdownTimeout     time.Duration
	LogLevel            string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.AccessTokenValidity = 7 * 24 * time.Hour
	c.CORSOrigins = []string{"http://localhost:3000"}
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
