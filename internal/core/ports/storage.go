// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
)

// StorageClient archives uploaded workbooks between the upload request and
// the worker that ingests them. Keys are slash separated, shaped
// uploads/YYYY/MM/DD/<uuid>.xlsx.
type StorageClient interface {
	// Upload stores data under key and returns where it landed
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	// Delete is idempotent
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
