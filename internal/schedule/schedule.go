package schedule

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/model"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Run executes job immediately and then every interval until ctx is done.
//
// Runs never overlap: when a run takes longer than the interval, the next
// one is rescheduled instead of started alongside it. A failed run is
// logged and does not stop the schedule. Run returns once ctx is done and
// the current run, if any, has returned.
func Run(ctx context.Context, every time.Duration, job Job) error {
	if every <= 0 {
		return model.NewCLIError(model.ExitConfigError, fmt.Sprintf("schedule interval must be positive, got %s", every))
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	var runs atomic.Int64
	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			n := runs.Add(1)
			runCtx := logger.WithFields(ctx, zap.Int64("run", n))
			if err := job(runCtx); err != nil {
				logger.Error(runCtx, "scheduled sync failed", zap.Error(err))
				return
			}
			logger.Debug(runCtx, "scheduled sync succeeded")
		}),
		gocron.WithName("docsync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	logger.Info(ctx, "starting schedule", zap.Duration("every", every))
	s.Start()

	<-ctx.Done()

	logger.Info(ctx, "stopping schedule", zap.Int64("runs", runs.Load()))
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
