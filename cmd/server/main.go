package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/app"
	"ctr-optimizer/shared/config"
	"ctr-optimizer/shared/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info", "ctr-optimizer")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.Logging.Level, "ctr-optimizer")

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	defer a.Close()

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		log.Info().Msg("running one forced snapshot refresh")
		if err := a.RefreshOnce(ctx); err != nil {
			log.Error().Err(err).Msg("refresh failed")
			a.Close()
			os.Exit(1)
		}
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		a.Close()
		os.Exit(1)
	}
}
