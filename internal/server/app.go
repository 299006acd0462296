// Package server wires the newsexplorer backend: repositories, services, the
// REST API and the gRPC health service, and runs them until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/dmitrijs2005/newsexplorer/internal/server/config"
	"github.com/dmitrijs2005/newsexplorer/internal/server/health"
	"github.com/dmitrijs2005/newsexplorer/internal/server/httpapi"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/newsexplorer/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	health *health.Server
}

// NewApp opens storage and builds the servers. An empty DatabaseDSN keeps
// all data in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if db == nil {
		logger.Warn(ctx, "no database configured, data is kept in memory")
	}

	us := services.NewUserService(db, rm, c)
	as := services.NewArticleService(db, rm)

	api := httpapi.NewServer(httpapi.Options{
		Address:        c.HTTPAddr,
		SecretKey:      []byte(c.SecretKey),
		AllowedOrigins: c.AllowedOrigins,
	}, logger, us, as)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   api,
		health: health.NewServer(c.GRPCAddr, logger),
	}, nil
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM/SIGQUIT arrives or one
// of the servers fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", app.http.Run)
	go run("grpc", app.health.Run)

	wg.Wait()

	app.logger.Info(ctx, "App stopped")

	return errors.Join(errs...)
}

// Close releases the database handle, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
