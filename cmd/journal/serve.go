package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/journal/internal/api"
	"github.com/newthinker/journal/internal/config"
	"github.com/newthinker/journal/internal/metrics"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the journal HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, err := newLogger(opts, cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	if opts.configFile == "" {
		log.Warn("no config file specified, using defaults")
	}

	server, cleanup, err := buildServer(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info("starting journal server",
		zap.String("addr", server.Addr()),
		zap.String("trade_store", cfg.Storage.Trades.Driver),
		zap.String("archive", cfg.Storage.Archive.Type),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down journal server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

// buildServer wires the stores, engines and metrics into an api.Server.
// cleanup closes the trade store.
func buildServer(cfg *config.Config, log *zap.Logger) (*api.Server, func(), error) {
	store, err := openStore(cfg.Storage.Trades)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trade store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("closing trade store", zap.Error(err))
		}
	}

	fail := func(err error) (*api.Server, func(), error) {
		cleanup()
		return nil, nil, err
	}

	storage, err := archive.Open(cfg.Storage.ArchiveConfig())
	if err != nil {
		return fail(fmt.Errorf("opening archive: %w", err))
	}
	engine, err := newEngine(cfg.Sentiment)
	if err != nil {
		return fail(err)
	}
	provider, err := newNewsProvider(cfg.News)
	if err != nil {
		return fail(err)
	}

	server, err := api.NewServer(api.Config{
		Host:                  cfg.Server.Host,
		Port:                  cfg.Server.Port,
		APIKey:                cfg.Server.APIKey,
		DefaultTimeframe:      cfg.Analytics.Timeframe(),
		DefaultInitialBalance: cfg.Analytics.InitialBalance(),
		MetricsEnabled:        cfg.Metrics.Enabled,
		MetricsPath:           cfg.Metrics.Path,
	}, api.Dependencies{
		Store:    store,
		Archive:  storage,
		Engine:   engine,
		News:     provider,
		Registry: metrics.NewRegistry(),
	}, log)
	if err != nil {
		return fail(fmt.Errorf("creating server: %w", err))
	}

	return server, cleanup, nil
}
