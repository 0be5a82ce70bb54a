package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"battery-arbitrage/internal/analysis"
	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/data"
	"battery-arbitrage/internal/model"
	"battery-arbitrage/internal/recorder"
)

// PriceLoader supplies the full, time-sorted hourly price series.
type PriceLoader interface {
	Load(ctx context.Context) ([]model.PricePoint, error)
}

// Service runs the ingestion → optimisation → aggregation pipeline.
type Service struct {
	prices   PriceLoader
	engine   *backtest.Engine
	recorder recorder.Recorder
	logger   zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New constructs the pipeline. A nil rec disables persistence.
func New(prices PriceLoader, engine *backtest.Engine, rec recorder.Recorder, logger zerolog.Logger) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{
		prices:   prices,
		engine:   engine,
		recorder: rec,
		logger:   logger.With().Str("component", "service").Logger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Options tune a single Simulate call.
type Options struct {
	Source string // recorded with the run, e.g. "cli" or "api"
	Record bool
}

// Outcome is everything a caller may present about one run.
type Outcome struct {
	RunID   string
	Battery model.BatteryConfig
	Result  *backtest.Result
	Summary analysis.Summary
	Points  []model.PricePoint
}

// Simulate optimises every day of the loaded price series for batt.
func (s *Service) Simulate(ctx context.Context, batt model.BatteryConfig, opts Options) (*Outcome, error) {
	if err := batt.Validate(); err != nil {
		return nil, err
	}

	points, err := s.prices.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, data.ErrNoData
	}

	days := data.GroupByDay(points)
	res, err := s.engine.Run(ctx, days, batt)
	if err != nil {
		return nil, fmt.Errorf("run engine: %w", err)
	}

	out := &Outcome{
		RunID:   s.newID(),
		Battery: batt,
		Result:  res,
		Summary: analysis.Summarize(res.Days, points),
		Points:  points,
	}

	if opts.Record {
		run := recorder.NewRunRecord(out.RunID, opts.Source, s.now().UTC(), res)
		if err := s.recorder.RecordRun(ctx, run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	s.logger.Info().
		Str("run_id", out.RunID).
		Int("points", len(points)).
		Int("days", len(days)).
		Int("cycles", out.Summary.TotalCycles).
		Float64("total_profit", out.Summary.TotalProfit).
		Msg("simulation finished")
	return out, nil
}

func (s *Service) Recorder() recorder.Recorder {
	return s.recorder
}
