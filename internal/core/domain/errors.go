// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// IngestError is implemented by every error that aborts a workbook ingest
// because of the uploaded file rather than the service itself.
type IngestError interface {
	error
	ingestError()
}

// MissingSheetError is returned when the order sheet is absent or empty
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %s not found", e.Sheet)
}

func (*MissingSheetError) ingestError() {}

// MissingSupplierError is returned for a product row without a supplier
type MissingSupplierError struct {
	Row     int
	Article string
}

func (e *MissingSupplierError) Error() string {
	return fmt.Sprintf("supplier is not specified in row %d (article %q)", e.Row, e.Article)
}

func (*MissingSupplierError) ingestError() {}

// MissingManufacturerError is returned for a product row without a manufacturer
type MissingManufacturerError struct {
	Row     int
	Article string
}

func (e *MissingManufacturerError) Error() string {
	return fmt.Sprintf("manufacturer is not specified in row %d (article %q)", e.Row, e.Article)
}

func (*MissingManufacturerError) ingestError() {}

// BulkWriteError wraps a storage failure of a bulk insert or update.
// The message names the table only; the cause stays available to logs.
type BulkWriteError struct {
	Table string
	Err   error
}

func (e *BulkWriteError) Error() string {
	return fmt.Sprintf("bulk write into %s failed", e.Table)
}

func (e *BulkWriteError) Unwrap() error { return e.Err }

func (*BulkWriteError) ingestError() {}

// MalformedWorkbookError is returned when the upload is not a readable
// workbook or a cell cannot be interpreted.
type MalformedWorkbookError struct {
	Detail string
	Err    error
}

func (e *MalformedWorkbookError) Error() string {
	if e.Detail == "" {
		return "malformed workbook"
	}
	return "malformed workbook: " + e.Detail
}

func (e *MalformedWorkbookError) Unwrap() error { return e.Err }

func (*MalformedWorkbookError) ingestError() {}

// DuplicateEntityError is returned when a create would duplicate a live row
type DuplicateEntityError struct {
	Entity string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s with these parameters already exists. Creation is not possible", displayName(e.Entity))
}

// Operation names carried by NotFoundError
const (
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// NotFoundError is returned when an id does not match a live row
type NotFoundError struct {
	Entity string
	ID     int64
	Op     string
}

func (e *NotFoundError) Error() string {
	switch e.Op {
	case OpUpdate:
		return fmt.Sprintf("%s with id %d does not exist. Update is not possible", displayName(e.Entity), e.ID)
	case OpDelete:
		return fmt.Sprintf("%s with id %d does not exist. Deletion is not possible", displayName(e.Entity), e.ID)
	default:
		return fmt.Sprintf("%s with id %d not found", displayName(e.Entity), e.ID)
	}
}

// ValidationError reports an invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// IsIngestError reports whether err carries an ingest failure
func IsIngestError(err error) bool {
	var ie IngestError
	return errors.As(err, &ie)
}

func displayName(entity string) string {
	switch entity {
	case EntityManufacturer:
		return "Manufacturer"
	case EntitySupplier:
		return "Supplier"
	case EntityWarehouse:
		return "Product"
	case EntitySerialNumber:
		return "Serial number"
	default:
		return entity
	}
}
