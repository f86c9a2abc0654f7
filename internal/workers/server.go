// internal/workers/server.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-ms/internal/pkg/config"
)

const (
	retryBase = 2 * time.Second
	retryMax  = 10 * time.Minute

	// queueSlack covers the time a task waits before its first attempt
	queueSlack = time.Hour
)

// RedisOpt returns the asynq connection for cfg
func RedisOpt(cfg config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewServer builds the worker server. Failed tasks back off
// exponentially up to retryMax.
func NewServer(cfg config.AsynqConfig, logger *slog.Logger) *asynq.Server {
	l := logger.With(slog.String("component", "asynq"))
	return asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency:     cfg.Concurrency,
		Queues:          cfg.Queues,
		StrictPriority:  cfg.StrictPriority,
		RetryDelayFunc:  RetryDelay,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          asynqLogger{l},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			id, _ := asynq.GetTaskID(ctx)
			l.ErrorContext(ctx, "task failed",
				slog.String("type", task.Type()),
				slog.String("task_id", id),
				slog.Int("retried", retried),
				slog.Int("max_retry", maxRetry),
				slog.String("error", err.Error()))
		}),
		HealthCheckFunc: func(err error) {
			if err != nil {
				l.Error("redis health check failed", slog.String("error", err.Error()))
			}
		},
	})
}

// NewScheduler builds the scheduler of the periodic tasks and registers
// the upload cleanup when a cron spec is configured.
func NewScheduler(cfg config.AsynqConfig, logger *slog.Logger) (*asynq.Scheduler, error) {
	l := logger.With(slog.String("component", "asynq"))
	scheduler := asynq.NewScheduler(RedisOpt(cfg), &asynq.SchedulerOpts{Logger: asynqLogger{l}})
	if cfg.CleanupSchedule == "" {
		return scheduler, nil
	}

	entryID, err := scheduler.Register(cfg.CleanupSchedule, NewCleanupTask())
	if err != nil {
		return nil, fmt.Errorf("failed to register cleanup %q: %w", cfg.CleanupSchedule, err)
	}
	l.Info("cleanup scheduled",
		slog.String("cron", cfg.CleanupSchedule),
		slog.String("entry_id", entryID))
	return scheduler, nil
}

// RetryDelay doubles from retryBase on every attempt, capped at retryMax
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 0 {
		n = 0
	}
	if n > 16 {
		return retryMax
	}
	return min(retryBase<<n, retryMax)
}

// DedupeWindow bounds how long an ingest task can stay in flight: every
// attempt running into timeout plus the backoff between attempts.
func DedupeWindow(maxRetry int, timeout time.Duration) time.Duration {
	window := queueSlack + timeout
	for n := 0; n < maxRetry; n++ {
		window += RetryDelay(n, nil, nil) + timeout
	}
	return window
}

// asynqLogger routes asynq's printf-less logger onto slog
type asynqLogger struct {
	l *slog.Logger
}

func (a asynqLogger) Debug(args ...any) { a.l.Debug(fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...any)  { a.l.Info(fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...any)  { a.l.Warn(fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...any) { a.l.Error(fmt.Sprint(args...)) }

func (a asynqLogger) Fatal(args ...any) {
	a.l.Error(fmt.Sprint(args...))
	os.Exit(1)
}
