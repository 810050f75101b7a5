package config

import (
	"flag"

	"github.com/dmitrijs2005/soulara/internal/flagx"
)

func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-u", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "listen address")
	fs.BoolVar(&cfg.RequireUserID, "u", cfg.RequireUserID, "require the userId cookie next to authToken")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
