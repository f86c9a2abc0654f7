// internal/core/ports/jobs.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// IngestQueue schedules workbook ingests on the background workers and
// reports their progress. IngestStatus returns domain.ErrJobNotFound for
// unknown task ids.
type IngestQueue interface {
	EnqueueIngest(ctx context.Context, job domain.IngestJob) (string, error)
	IngestStatus(ctx context.Context, taskID string) (*domain.IngestJobStatus, error)
}
