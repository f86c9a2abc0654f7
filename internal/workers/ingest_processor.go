// internal/workers/ingest_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
)

// IngestProcessor runs archived workbook uploads through the ingest service
type IngestProcessor struct {
	ingest  ports.IngestService
	storage ports.StorageClient
	cache   ports.CacheRepository
	timeout time.Duration
	logger  *slog.Logger
}

// NewIngestProcessor creates a new ingest processor. cache holds the upload
// dedupe keys and may be nil.
func NewIngestProcessor(ingest ports.IngestService, storage ports.StorageClient, cache ports.CacheRepository, timeout time.Duration, logger *slog.Logger) *IngestProcessor {
	return &IngestProcessor{
		ingest:  ingest,
		storage: storage,
		cache:   cache,
		timeout: timeout,
		logger:  logger.With(slog.String("processor", "ingest")),
	}
}

// ProcessIngest handles TypeWorkbookIngest. Workbooks rejected by the
// ingest are not retried; storage failures and transient database
// failures are. The upload dedupe key is released once the task reaches
// a final outcome, so the same file can be uploaded again.
func (p *IngestProcessor) ProcessIngest(ctx context.Context, t *asynq.Task) error {
	var job domain.IngestJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	err := p.process(ctx, t, job)
	if err == nil || errors.Is(err, asynq.SkipRetry) || lastAttempt(ctx) {
		p.releaseDedupe(ctx, job.DedupeKey)
	}
	return err
}

func (p *IngestProcessor) process(ctx context.Context, t *asynq.Task, job domain.IngestJob) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ctx = context.WithValue(ctx, logger.ContextKeyUploadKey, job.UploadKey)
	if id, ok := asynq.GetTaskID(ctx); ok {
		ctx = context.WithValue(ctx, logger.ContextKeyTaskID, id)
	}

	p.logger.InfoContext(ctx, "processing workbook", slog.String("file_name", job.FileName))

	data, err := p.storage.Download(ctx, job.UploadKey)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", job.UploadKey, err)
	}

	report, err := p.ingest.Ingest(ctx, data)
	if err != nil {
		if domain.IsIngestError(err) && !transient(err) {
			p.logger.WarnContext(ctx, "workbook rejected", slog.String("error", err.Error()))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	if w := t.ResultWriter(); w != nil {
		result, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if _, err := w.Write(result); err != nil {
			p.logger.WarnContext(ctx, "failed to store ingest result", slog.String("error", err.Error()))
		}
	}

	p.logger.InfoContext(ctx, "workbook ingested",
		slog.Int("warehouses_created", report.WarehousesCreated),
		slog.Int("serial_numbers_created", report.SerialNumbersCreated))
	return nil
}

func (p *IngestProcessor) releaseDedupe(ctx context.Context, key string) {
	if p.cache == nil || key == "" {
		return
	}
	// the task context may already be past its deadline
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.cache.Delete(ctx, key); err != nil {
		p.logger.WarnContext(ctx, "failed to release upload dedupe key",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// lastAttempt reports whether a failure of the running task is final.
// Outside a worker there is no retry metadata and the key is left to
// expire.
func lastAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return false
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return false
	}
	return retried >= maxRetry
}

// transient reports whether a failed ingest may succeed when run again.
// Deadlines, dropped connections and serialization conflicts are
// transient; data and constraint errors reported by Postgres are not.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) < 2 {
			return false
		}
		switch pgErr.Code[:2] {
		case "08", "40", "53", "57", "58":
			return true
		default:
			return false
		}
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
