package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/app"
	"github.com/MikhailRaia/shorturls/internal/config"
	"github.com/MikhailRaia/shorturls/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shortener: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitLogger(cfg.LogLevel)

	log.Info().
		Str("serverAddress", cfg.ServerAddress).
		Str("grpcAddress", cfg.GRPCAddress).
		Int64("defaultValidity", cfg.DefaultValidity).
		Dur("sweepInterval", cfg.SweepInterval).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApp(cfg)
	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}

	return nil
}
