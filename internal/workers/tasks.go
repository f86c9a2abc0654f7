// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

const (
	TypeWorkbookIngest = "workbook:ingest"
	TypeUploadsCleanup = "uploads:cleanup"
)

// Queues the tasks are routed to
const (
	QueueCritical = "critical"
	QueueLow      = "low"
)

// ResultRetention keeps finished ingest tasks inspectable
const ResultRetention = 24 * time.Hour

// NewIngestTask builds the task that ingests an archived workbook
func NewIngestTask(job domain.IngestJob, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingest job: %w", err)
	}
	return asynq.NewTask(TypeWorkbookIngest, payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(maxRetry),
		asynq.Retention(ResultRetention)), nil
}

// NewCleanupTask builds the periodic upload cleanup task
func NewCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeUploadsCleanup, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}
