// Package server wires the Soulara Auth API: storage, member service and the
// HTTP router, and runs it until the context is cancelled.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/soulara/internal/cryptox"
	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/netx"
	"github.com/dmitrijs2005/soulara/internal/server/config"
	"github.com/dmitrijs2005/soulara/internal/server/httpapi"
	"github.com/dmitrijs2005/soulara/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/soulara/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	users  *services.UserService
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	secret := cfg.SecretKey
	if secret == "" {
		s, err := cryptox.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		secret = s
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	repos, err := repomanager.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, members are kept in memory")
	}

	users := services.NewUserService(repos.Users(), []byte(secret), cfg.AccessTokenValidity, logger)
	return &App{config: cfg, logger: logger, repos: repos, users: users}, nil
}

func (app *App) Handler() http.Handler {
	return httpapi.NewRouter(app.users, app.config.CORSOrigins, app.logger)
}

func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "close storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting Auth API", "address", app.config.Address)

	srv := &http.Server{
		Addr:              app.config.Address,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return netx.ListenAndServe(ctx, srv, app.config.ShutdownTimeout, app.logger)
}
