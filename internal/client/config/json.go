package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/soulara/internal/flagx"
	"github.com/dmitrijs2005/soulara/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the value already in Config.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	WebBaseURL     *string         `json:"web_base_url"`
	DatabaseFile   *string         `json:"database_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SecureCookies  *bool           `json:"secure_cookies"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// It panics on read or unmarshal errors.
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

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.WebBaseURL != nil {
		cfg.WebBaseURL = *jc.WebBaseURL
	}
	if jc.DatabaseFile != nil {
		cfg.DatabaseFile = *jc.DatabaseFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SecureCookies != nil {
		cfg.SecureCookies = *jc.SecureCookies
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
