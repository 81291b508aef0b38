// Package server initializes and runs the roomsync development server.
// It opens the configured profile store, handles graceful shutdown and
// serves the HTTP API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/roomsync/internal/logging"
	"github.com/dmitrijs2005/roomsync/internal/server/auth"
	"github.com/dmitrijs2005/roomsync/internal/server/config"
	"github.com/dmitrijs2005/roomsync/internal/server/httpapi"
	"github.com/dmitrijs2005/roomsync/internal/server/profilestore"
	"github.com/dmitrijs2005/roomsync/internal/server/users"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *httpapi.Server
	closeFn func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel, "json")

	store, closeFn, err := profilestore.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}
	logger.Info(ctx, "profile store ready", "driver", c.StoreDriver)

	us := users.NewService(store)
	tokens := auth.NewTokens(store, c.SecretKey, c.AccessTokenValidityDuration)
	srv := httpapi.NewServer(c.ListenAddr, c.AnonKey, us, tokens, logger)

	return &App{config: c, logger: logger, server: srv, closeFn: closeFn}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the server stops, either on a signal or a listen error.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if cerr := app.closeFn(); cerr != nil {
		app.logger.Error(ctx, "close store", "err", cerr)
	}
	return err
}
