package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"battery-arbitrage/internal/api"
	"battery-arbitrage/internal/api/middleware"
	"battery-arbitrage/internal/data"
	"battery-arbitrage/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP API until ctx is cancelled or the process is signalled.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if a.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	src, err := a.newSource()
	if err != nil {
		return err
	}
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}
	defer rec.Close()

	limiter := middleware.NewRateLimiter(a.Config.API.RateLimit, a.Config.API.RateBurst)
	cfg := a.Config.API
	router := api.NewRouter(api.Deps{
		Simulator:   a.newService(src, rec),
		Files:       src,
		Runs:        rec,
		Limiter:     limiter,
		Battery:     a.Config.Battery,
		BatteryDir:  cfg.BatteryDir,
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      a.Logger,
	})

	sched := scheduler.New(ctx, a.Logger)
	refresh := refreshJob(src, limiter)
	// Warm the cache so the first request does not pay for parsing.
	sched.RunNow("refresh-prices", refresh)
	if spec := a.Config.Data.RefreshCron; spec != "" {
		if err := sched.Register("refresh-prices", spec, refresh); err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", srv.Addr).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down API server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.Logger.Info().Msg("API server stopped")
	return nil
}

// refreshJob drops expired cache entries and idle rate limiters, then
// re-reads the price directory.
func refreshJob(src *data.Source, limiter *middleware.RateLimiter) scheduler.Job {
	return func(ctx context.Context) error {
		src.Cache.Sweep()
		limiter.Sweep()
		return src.Refresh(ctx)
	}
}
