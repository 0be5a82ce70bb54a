package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"battery-arbitrage/internal/app"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "Path to env file")
	cfgPath := flag.String("config", os.Getenv("ARBITRAGE_CONFIG"), "Path to YAML config")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		fmt.Fprintf(os.Stderr, "load env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging, nil)
	if err := app.NewApp(cfg, logger).Serve(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("api server failed")
	}
}
