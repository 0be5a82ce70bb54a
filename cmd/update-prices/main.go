package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"battery-arbitrage/internal/app"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/logging"
)

// Downloads the last N days of spot prices into data.dir. Meant for cron.
func main() {
	var (
		cfgPath = flag.String("config", os.Getenv("ARBITRAGE_CONFIG"), "Path to YAML config")
		days    = flag.Int("days", 1, "Number of days to download, ending today")
		output  = flag.String("output", "", "Output file path (default: inside data.dir)")
	)
	flag.Parse()
	_ = godotenv.Load()

	if *days < 1 {
		fmt.Fprintln(os.Stderr, "-days must be >= 1")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "timezone: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging, nil)
	today := time.Now().In(loc)
	opts := app.FetchOptions{
		From: today.AddDate(0, 0, -(*days - 1)),
		To:   today,
		Out:  *output,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	path, n, err := app.NewApp(cfg, logger).Fetch(ctx, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("price update failed")
	}
	fmt.Printf("Wrote %d prices to %s\n", n, path)
}
