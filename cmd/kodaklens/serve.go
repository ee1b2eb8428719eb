package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens"
)

const shutdownTimeout = 10 * time.Second

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional config file (yaml, json, toml, env)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := kodaklens.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logger, err := kodaklens.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := kodaklens.New(cfg, kodaklens.DefaultViews(), kodaklens.WithLogger(logger))
	defer app.Close()

	errc := make(chan error, 1)
	go func() { errc <- app.Start(ctx) }()

	// SIGHUP re-reads STORIES_FILE without a restart.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				if err := app.ReloadStories(); err != nil {
					logger.Warn("reload stories", zap.Error(err))
				} else {
					logger.Info("stories reloaded")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}
