package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jewel-lending/backend/config"
	"jewel-lending/backend/global"
	"jewel-lending/backend/initialize"
	"jewel-lending/backend/server"

	"github.com/joho/godotenv"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to YAML config")
		envFile    = flag.String("env", ".env", "Optional dotenv file")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		global.Logger.Warn().Err(err).Msg("load env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger := initialize.NewLogger(os.Stderr, "error", "console")
		logger.Fatal().Err(err).Msg("load config")
	}
	global.Logger = initialize.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	cfg.Watch(initialize.SetLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initialize.Build(ctx, cfg)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Warn().Err(err).Msg("close db")
		}
		if global.Rdb != nil {
			_ = global.Rdb.Close()
		}
	}()

	if err := server.Run(ctx, server.New(cfg.HTTP.Addr(), app.Router), 10*time.Second); err != nil {
		global.Logger.Error().Err(err).Msg("http server")
	}
}
