// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// TempFilePrefix names the spill files multipart uploads leave in the temp dir
const TempFilePrefix = "multipart-"

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	storage    ports.StorageClient
	retention  time.Duration
	tempDir    string
	tempMaxAge time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(store ports.StorageClient, retention time.Duration, tempDir string, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage:    store,
		retention:  retention,
		tempDir:    tempDir,
		tempMaxAge: 24 * time.Hour,
		now:        time.Now,
		logger:     logger.With(slog.String("processor", "cleanup")),
	}
}

// Cleanup handles TypeUploadsCleanup
func (p *CleanupProcessor) Cleanup(ctx context.Context, t *asynq.Task) error {
	if err := p.CleanupUploads(ctx); err != nil {
		return err
	}
	return p.CleanupTempFiles(ctx)
}

// CleanupUploads deletes archived workbooks older than the retention window
func (p *CleanupProcessor) CleanupUploads(ctx context.Context) error {
	keys, err := p.storage.List(ctx, storage.UploadPrefix)
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	cutoff := p.now().UTC().Add(-p.retention)
	var deleted int
	for _, key := range keys {
		day, ok := storage.UploadDate(key)
		if !ok || !day.Before(cutoff) {
			continue
		}
		if err := p.storage.Delete(ctx, key); err != nil {
			p.logger.WarnContext(ctx, "failed to delete upload",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	p.logger.InfoContext(ctx, "uploads cleaned up",
		slog.Int("scanned", len(keys)),
		slog.Int("deleted", deleted))
	return nil
}

// CleanupTempFiles removes stale upload spill files from the temp dir
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context) error {
	if p.tempDir == "" {
		return nil
	}

	entries, err := os.ReadDir(p.tempDir)
	if err != nil {
		return fmt.Errorf("failed to read temp directory: %w", err)
	}

	var deletedCount int
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || p.now().Sub(info.ModTime()) <= p.tempMaxAge {
			continue
		}
		path := filepath.Join(p.tempDir, e.Name())
		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete temp file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			continue
		}
		deletedCount++
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.Int("files_deleted", deletedCount))
	return nil
}
