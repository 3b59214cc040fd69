// Package scheduler runs the engine's periodic jobs: ingestion, forecast
// rebuild, alert evaluation, environment snapshot capture, and periodic
// score recalculation (spec §4.12, §5), each guarded by a Redis
// non-reentrancy lock so a slow tick never overlaps the next.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saaga0h/bayscan-engine/internal/engine"
	"github.com/saaga0h/bayscan-engine/pkg/config"
	"github.com/saaga0h/bayscan-engine/pkg/redis"
)

// lockLease bounds how long a job lock is held before it self-expires,
// well above any single tick's expected runtime so a crashed holder
// doesn't wedge the next run indefinitely.
const lockLease = 10 * time.Minute

const (
	jobIngestion      = "ingestion"
	jobSnapshot       = "snapshot"
	jobPeriodicRecalc = "periodic_recalc"
)

// Scheduler owns the three periodic tickers and the two startup jobs.
type Scheduler struct {
	engine *engine.Engine
	redis  redis.Client
	cfg    *config.Config
	logger *slog.Logger

	tickers  []*time.Ticker
	stopChan chan struct{}
}

// New builds a Scheduler against an assembled Engine.
func New(e *engine.Engine, redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{engine: e, redis: redisClient, cfg: cfg, logger: logger, stopChan: make(chan struct{})}
}

// Run executes the two startup jobs, then starts the three periodic
// tickers and blocks until ctx is cancelled (spec §4.12).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("running startup ingestion and forecast build")
	if err := s.runIngestionAndForecast(ctx); err != nil {
		s.logger.Error("startup ingestion failed", "error", err)
	}
	if err := s.runSnapshot(ctx); err != nil {
		s.logger.Error("startup snapshot capture failed", "error", err)
	}

	s.startPeriodic(ctx, jobIngestion, time.Duration(s.cfg.FetchIntervalMinutes)*time.Minute, s.runIngestionAndForecast)
	s.startPeriodic(ctx, jobSnapshot, time.Duration(s.cfg.SnapshotIntervalMinutes)*time.Minute, s.runSnapshot)
	s.startPeriodic(ctx, jobPeriodicRecalc, time.Duration(s.cfg.PeriodicRecalcMinutes)*time.Minute, s.runPeriodicRecalc)

	s.logger.Info("scheduler running")
	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	s.Stop()
	return nil
}

// Stop halts every periodic ticker. Safe to call once; Run calls it on
// context cancellation.
func (s *Scheduler) Stop() {
	for _, t := range s.tickers {
		t.Stop()
	}
	close(s.stopChan)
}

func (s *Scheduler) startPeriodic(ctx context.Context, job string, interval time.Duration, fn func(context.Context) error) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	s.tickers = append(s.tickers, ticker)

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					s.logger.Error("scheduled job failed", "job", job, "error", err)
				}
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// withLock runs fn only if the named job's lock is free, skipping silently
// (with a debug log) if another run already holds it (spec §4.12's "must
// not start a second copy").
func (s *Scheduler) withLock(ctx context.Context, job string, fn func(context.Context) error) error {
	lock, err := redis.TryAcquire(ctx, s.redis, redis.JobLockKey(job), lockLease)
	if err != nil {
		return fmt.Errorf("acquire lock for %s: %w", job, err)
	}
	if !lock.Held() {
		s.logger.Debug("skipping job, already running", "job", job)
		return nil
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Warn("failed to release job lock", "job", job, "error", err)
		}
	}()
	return fn(ctx)
}

// runIngestionAndForecast runs the six-step ingestion sequence — tide,
// weather forecast, astronomy, water temp, weather observations, and
// marine conditions — each
// isolated so one source's failure doesn't abort the others, then rebuilds
// forecast windows and evaluates alerts (spec §4.10-§4.12).
func (s *Scheduler) runIngestionAndForecast(ctx context.Context) error {
	return s.withLock(ctx, jobIngestion, func(ctx context.Context) error {
		// Each step runs against the shared ctx directly, not an
		// errgroup-derived one: one source failing must not cancel the
		// others mid-flight (spec §4.12's per-step isolation). errgroup
		// here is only a WaitGroup with error capture.
		var g errgroup.Group

		g.Go(func() error { return s.engine.IngestTide(ctx) })
		g.Go(func() error { return s.engine.IngestWeatherForecast(ctx) })
		g.Go(func() error { return s.engine.IngestAstronomy(ctx) })
		g.Go(func() error { return s.engine.IngestWaterTemp(ctx) })
		g.Go(func() error { return s.engine.IngestWeatherObservations(ctx) })
		g.Go(func() error { return s.engine.IngestMarine(ctx) })

		if err := g.Wait(); err != nil {
			s.logger.Error("one or more ingestion steps failed", "error", err)
		}

		if err := s.engine.BuildForecast(ctx); err != nil {
			return fmt.Errorf("forecast build: %w", err)
		}
		if err := s.engine.EvaluateAlerts(ctx); err != nil {
			return fmt.Errorf("alert evaluation: %w", err)
		}
		return nil
	})
}

func (s *Scheduler) runSnapshot(ctx context.Context) error {
	return s.withLock(ctx, jobSnapshot, s.engine.CaptureSnapshot)
}

func (s *Scheduler) runPeriodicRecalc(ctx context.Context) error {
	lookback := time.Duration(s.cfg.PeriodicRecalcMinutes) * 4 * time.Minute
	return s.withLock(ctx, jobPeriodicRecalc, func(ctx context.Context) error {
		return s.engine.RecalculatePeriodically(ctx, lookback)
	})
}
