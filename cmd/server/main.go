package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/injector"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
)

const defaultShutdownTimeout = 5 * time.Second

var configFile = flag.String("config", "", "config file path (default: ./config.yaml if present)")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if err := logger.InitGlobal(&config.Log); err != nil {
		return fmt.Errorf("init global logger: %w", err)
	}

	app, cleanup, err := injector.InitializeApp(config, log)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer cleanup()

	log.Info("starting",
		zap.String("ai_provider", config.AI.Provider),
		zap.String("notes_backend", config.Notes.Backend),
		zap.Bool("websearch", config.WebSearch.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.HTTPServer.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	log.Info("shutting down", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.HTTPServer.Stop(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}
	log.Info("server exited")
	return nil
}
