// internal/core/domain/ingest.go
package domain

import (
	"errors"
	"time"
)

// IngestReport summarises one committed workbook ingest
type IngestReport struct {
	Sheet                string        `json:"sheet"`
	RowsRead             int           `json:"rows_read"`
	RowsSkipped          int           `json:"rows_skipped"`
	WarehousesCreated    int           `json:"warehouses_created"`
	SerialNumbersCreated int           `json:"serial_numbers_created"`
	Stock                []StockCount  `json:"stock"`
	StartedAt            time.Time     `json:"started_at"`
	Duration             time.Duration `json:"duration"`
}

// IngestJob is the payload of an asynchronous ingest task. DedupeKey is
// the cache key that blocks a second upload of the same file while the
// task runs.
type IngestJob struct {
	UploadKey  string    `json:"upload_key"`
	FileName   string    `json:"file_name"`
	DedupeKey  string    `json:"dedupe_key,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ErrJobNotFound is returned for an unknown ingest task id
var ErrJobNotFound = errors.New("ingest task not found")

// IngestJobStatus is the progress of an asynchronous ingest. Report is
// set once the task completed.
type IngestJobStatus struct {
	TaskID      string        `json:"task_id"`
	State       string        `json:"state"`
	Retried     int           `json:"retried"`
	MaxRetry    int           `json:"max_retry"`
	LastError   string        `json:"last_error,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Report      *IngestReport `json:"report,omitempty"`
}
