package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/soulara/internal/flagx"
	"github.com/dmitrijs2005/soulara/internal/timex"
)

type JsonConfig struct {
	Address         *string         `json:"address"`
	RequireUserID   *bool           `json:"require_user_id"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Address != nil {
		cfg.Address = *jc.Address
	}
	if jc.RequireUserID != nil {
		cfg.RequireUserID = *jc.RequireUserID
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
