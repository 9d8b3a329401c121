// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zapponejosh/luach-api/internal/logger"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New creates a scheduler. Schedules are standard five-field cron
// expressions or descriptors such as "@daily". Each run gets a context
// bounded by timeout and cancelled on Stop.
func New(timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

// AddJob registers a job under a cron schedule
// Schedule examples:
//   - "*/5 * * * *"    - Every 5 minutes
//   - "@daily"         - Midnight every day
//   - "0 3 * * SUN"    - 3 AM on Sundays
//   - "@every 6h"      - Every six hours
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		_ = s.run(job)
	})
	if err != nil {
		return err
	}

	slog.Info("job registered",
		slog.String("schedule", schedule),
		slog.String("job", job.Name()),
	)

	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	return s.run(job)
}

func (s *Scheduler) run(job Job) error {
	ctx := logger.WithJob(s.ctx, job.Name())
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	logger.Debug(ctx, "running job")

	if err := job.Run(ctx); err != nil {
		logger.Error(ctx, "job failed", err, slog.Duration("duration", time.Since(start)))
		return err
	}

	logger.Info(ctx, "job completed", slog.Duration("duration", time.Since(start)))
	return nil
}
