package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"battery-arbitrage/internal/data"
)

// FetchOptions select the days to download. To is inclusive.
type FetchOptions struct {
	From time.Time
	To   time.Time
	Out  string // defaults to <data.dir>/prices_<area>_<from>_<to>.json
}

// Fetch downloads hourly prices from the remote feed into the data directory
// and returns the written path.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) (string, int, error) {
	if opts.From.IsZero() || opts.To.IsZero() {
		return "", 0, errors.New("--from and --to are required")
	}
	if opts.To.Before(opts.From) {
		return "", 0, errors.New("--to must not be before --from")
	}

	loc, err := a.Config.Location()
	if err != nil {
		return "", 0, err
	}
	start := time.Date(opts.From.Year(), opts.From.Month(), opts.From.Day(), 0, 0, 0, 0, loc)
	end := time.Date(opts.To.Year(), opts.To.Month(), opts.To.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	client := data.NewFeedClient(a.Config.Feed.BaseURL, a.Config.Feed.Area, a.Logger)
	points, err := client.Fetch(ctx, start, end, loc)
	if err != nil {
		return "", 0, err
	}
	if len(points) == 0 {
		return "", 0, data.ErrNoData
	}

	path := opts.Out
	if path == "" {
		name := fmt.Sprintf("prices_%s_%s_%s.json", client.Area, start.Format("20060102"), opts.To.Format("20060102"))
		path = filepath.Join(a.Config.Data.Dir, name)
	}
	if err := ensureDir(path); err != nil {
		return "", 0, err
	}
	if err := data.WritePriceJSON(path, points); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}

	a.Logger.Info().Str("path", path).Int("points", len(points)).Msg("prices saved")
	return path, len(points), nil
}
