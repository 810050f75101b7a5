package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/soulara/internal/buildinfo"
	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/netx"
	"github.com/dmitrijs2005/soulara/internal/web"
	"github.com/dmitrijs2005/soulara/internal/web/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	s, err := web.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := netx.SignalContext(context.Background())
	defer stop()

	if err := s.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
