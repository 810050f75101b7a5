package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/soulara/internal/flagx"
)

// parseFlags populates Config from the command-line flags it knows about;
// other arguments are filtered out with flagx.FilterArgs. It panics on
// malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-f", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "Auth API base URL")
	fs.StringVar(&cfg.WebBaseURL, "w", cfg.WebBaseURL, "web front-end base URL")
	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "SQLite file for local session storage")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.SecureCookies, "s", cfg.SecureCookies, "mark session cookies Secure")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
