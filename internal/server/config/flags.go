package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/soulara/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN, empty for in-memory storage
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o string   comma separated CORS origins
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.AccessTokenValidity.Minutes()), "access token validity (in minutes)")
	origins := fs.String("o", strings.Join(cfg.CORSOrigins, ","), "allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidity = time.Duration(*validity) * time.Minute
	cfg.CORSOrigins = splitOrigins(*origins)
}

func splitOrigins(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
