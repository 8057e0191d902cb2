package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"querysearch/internal/config"
	"querysearch/internal/engine"
	"querysearch/internal/jobs"
	"querysearch/internal/logging"
	"querysearch/internal/metrics"
	"querysearch/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Optional YAML config; env vars take precedence
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return err
	}
	cfg.ApplyYAML(yamlCfg)

	closeLog, err := logging.Setup(logging.FromConfig(cfg))
	if err != nil {
		return err
	}
	defer closeLog()

	metrics.Init(nil)

	runner, err := engine.New(engine.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	slog.Info("query engine configured", "command", runner.Build("<query>").String())

	checker := jobs.NewEngineChecker(cfg)

	srv := server.New(cfg)
	srv.RegisterRoutes(runner, checker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return checker.Start(gctx)
	})

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server exited")
	return nil
}
