// Package config loads settings for the web front-end server: defaults,
// then an optional JSON file (-c/-config), then command-line flags.
package config

import (
	"os"
	"time"
)

type Config struct {
	Address         string
	RequireUserID   bool
	ShutdownTimeout time.Duration
	LogLevel        string
}

func (c *Config) LoadDefaults() {
	c.Address = ":3000"
	c.RequireUserID = true
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

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
