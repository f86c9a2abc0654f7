// internal/adapters/storage/archive.go
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
)

// UploadPrefix is the key prefix of archived workbooks
const UploadPrefix = "uploads/"

const uploadDateLayout = "2006/01/02"

// XLSXContentType is the MIME type of xlsx workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// New picks the upload archive: the configured S3 bucket, or the temp
// directory when no bucket is set.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.StorageClient, error) {
	if cfg.AWS.S3Bucket == "" {
		return NewLocalStorage(cfg.FileProcessing.TempDir, logger), nil
	}
	s, err := NewS3Storage(ctx, cfg.AWS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
	}
	return s, nil
}

// UploadKey returns a fresh archive key for a workbook received at t,
// shaped uploads/YYYY/MM/DD/<uuid>.xlsx.
func UploadKey(t time.Time) string {
	return UploadPrefix + t.UTC().Format(uploadDateLayout) + "/" + uuid.NewString() + ".xlsx"
}

// UploadDate returns the day encoded in an archive key
func UploadDate(key string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(key, UploadPrefix)
	if !ok || len(rest) < len(uploadDateLayout) {
		return time.Time{}, false
	}
	day, err := time.Parse(uploadDateLayout, rest[:len(uploadDateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
