// internal/workers/queue.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type taskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// Queue schedules ingest tasks and reports their progress
type Queue struct {
	client    enqueuer
	inspector taskInspector
	maxRetry  int
	logger    *slog.Logger
}

// Statically assert that *Queue implements the IngestQueue interface.
var _ ports.IngestQueue = (*Queue)(nil)

// NewQueue creates a queue over an asynq client and inspector
func NewQueue(client *asynq.Client, inspector *asynq.Inspector, maxRetry int, logger *slog.Logger) *Queue {
	return newQueue(client, inspector, maxRetry, logger)
}

func newQueue(client enqueuer, inspector taskInspector, maxRetry int, logger *slog.Logger) *Queue {
	return &Queue{
		client:    client,
		inspector: inspector,
		maxRetry:  maxRetry,
		logger:    logger.With(slog.String("component", "queue")),
	}
}

// EnqueueIngest schedules job and returns the task id
func (q *Queue) EnqueueIngest(ctx context.Context, job domain.IngestJob) (string, error) {
	task, err := NewIngestTask(job, q.maxRetry)
	if err != nil {
		return "", err
	}
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue ingest: %w", err)
	}

	q.logger.InfoContext(ctx, "ingest enqueued",
		slog.String("task_id", info.ID),
		slog.String("upload_key", job.UploadKey))
	return info.ID, nil
}

// IngestStatus returns the state of an ingest task. Unknown ids yield
// domain.ErrJobNotFound.
func (q *Queue) IngestStatus(ctx context.Context, taskID string) (*domain.IngestJobStatus, error) {
	info, err := q.inspector.GetTaskInfo(QueueCritical, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to inspect task: %w", err)
	}
	if info.Type != TypeWorkbookIngest {
		return nil, domain.ErrJobNotFound
	}

	status := &domain.IngestJobStatus{
		TaskID:    info.ID,
		State:     info.State.String(),
		Retried:   info.Retried,
		MaxRetry:  info.MaxRetry,
		LastError: info.LastErr,
	}
	if !info.CompletedAt.IsZero() {
		completed := info.CompletedAt
		status.CompletedAt = &completed
	}
	if len(info.Result) > 0 {
		var report domain.IngestReport
		if err := json.Unmarshal(info.Result, &report); err != nil {
			q.logger.WarnContext(ctx, "unreadable ingest result",
				slog.String("task_id", taskID),
				slog.String("error", err.Error()))
		} else {
			status.Report = &report
		}
	}
	return status, nil
}
