package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/newsexplorer/internal/buildinfo"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/dmitrijs2005/newsexplorer/internal/server"
	"github.com/dmitrijs2005/newsexplorer/internal/server/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	zl, err := logging.NewProductionZap(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)
	defer logger.Sync()

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
