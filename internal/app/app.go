package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/data"
	"battery-arbitrage/internal/recorder"
	"battery-arbitrage/internal/service"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer // human-readable command output
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger.With().Str("component", "app").Logger(),
		Out:    os.Stdout,
	}
}

func (a *App) newSource() (*data.Source, error) {
	loc, err := a.Config.Location()
	if err != nil {
		return nil, err
	}
	return &data.Source{
		Dir:      a.Config.Data.Dir,
		Patterns: a.Config.Data.Patterns,
		Location: loc,
		Cache:    data.NewSeriesCache(a.Config.Data.CacheTTL),
		Logger:   a.Logger.With().Str("component", "source").Logger(),
	}, nil
}

// openRecorder returns the SQLite recorder, or a no-op one when no path is configured.
func (a *App) openRecorder() (recorder.Recorder, error) {
	if a.Config.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder(), nil
	}
	return recorder.NewSQLiteRecorder(a.Config.Database.SQLitePath, a.Logger)
}

func (a *App) newService(src service.PriceLoader, rec recorder.Recorder) *service.Service {
	engine := backtest.New(a.Config.Engine.Workers, a.Logger)
	return service.New(src, engine, rec, a.Logger)
}
