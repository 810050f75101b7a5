package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/soulara/internal/flagx"
	"github.com/dmitrijs2005/soulara/internal/timex"
)

// JsonConfig is the DTO read from the -c/-config file. Durations accept
// both "1h" strings and integer nanoseconds. Absent fields keep the value
// already in Config.
type JsonConfig struct {
	Address             *string         `json:"address"`
	DatabaseDSN         *string         `json:"database_dsn"`
	SecretKey           *string         `json:"secret_key"`
	AccessTokenValidity *timex.Duration `json:"access_token_validity"`
	CORSOrigins         []string        `json:"cors_origins"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson panics if the file cannot be read or contains invalid JSON.
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
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValidity != nil {
		cfg.AccessTokenValidity = jc.AccessTokenValidity.Duration
	}
	if jc.CORSOrigins != nil {
		cfg.CORSOrigins = jc.CORSOrigins
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
