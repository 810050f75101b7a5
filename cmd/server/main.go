package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/soulara/internal/buildinfo"
	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/netx"
	"github.com/dmitrijs2005/soulara/internal/server"
	"github.com/dmitrijs2005/soulara/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	ctx, stop := netx.SignalContext(context.Background())
	defer stop()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
