package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a scheduled task. Errors are logged, never fatal.
type Job func(ctx context.Context) error

// Scheduler runs background jobs on cron specs with a seconds field.
type Scheduler struct {
	Cron   *cron.Cron
	ctx    context.Context
	logger zerolog.Logger
}

// New creates a scheduler whose jobs receive ctx.
func New(ctx context.Context, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		ctx:    ctx,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds job under name on spec, e.g. "0 */15 * * * *".
func (s *Scheduler) Register(name, spec string, job Job) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	s.logger.Info().Str("job", name).Str("spec", spec).Msg("job registered")
	return nil
}

// RunNow executes job immediately on the calling goroutine.
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) {
	if s.ctx.Err() != nil {
		return
	}
	started := time.Now()
	if err := job(s.ctx); err != nil {
		s.logger.Error().Err(err).Str("job", name).Msg("job failed")
		return
	}
	s.logger.Debug().Str("job", name).Dur("elapsed", time.Since(started)).Msg("job done")
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}
