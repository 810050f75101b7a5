package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Soulara CLI.
type Config struct {
	APIBaseURL     string
	WebBaseURL     string
	DatabaseFile   string
	RequestTimeout time.Duration
	SecureCookies  bool
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.WebBaseURL = "http://localhost:3000"
	c.DatabaseFile = "soulara.db"
	c.RequestTimeout = 15 * time.Second
	c.SecureCookies = false
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
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
