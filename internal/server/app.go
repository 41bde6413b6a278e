// Package server initializes and runs the stockfolio server: it wires the
// database, the services and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dsmirnov/stockfolio/internal/logging"
	"github.com/dsmirnov/stockfolio/internal/server/config"
	"github.com/dsmirnov/stockfolio/internal/server/httpapi"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/repomanager"
	"github.com/dsmirnov/stockfolio/internal/server/services"
	"github.com/dsmirnov/stockfolio/internal/server/storage"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage *storage.Handle
	api     *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	handle := storage.NewHandle(cfg.DatabaseDSN)
	if err := handle.Connect(ctx); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db := handle.DB()
	m := repomanager.NewPostgresRepositoryManager()

	api := httpapi.NewServer(cfg, logger,
		services.NewUserService(db, m, cfg),
		services.NewStockService(db, m, cfg),
		services.NewPortfolioService(db, m),
		services.NewFilingService(db, m, cfg),
	)

	return &App{config: cfg, logger: logger, storage: handle, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
