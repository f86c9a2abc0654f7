// internal/core/domain/entity.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Entity names used in messages, cache keys and bulk write errors
const (
	EntityManufacturer = "manufacturer"
	EntitySupplier     = "supplier"
	EntityWarehouse    = "warehouse"
	EntitySerialNumber = "serial_number"
)

// MaxSearchLength caps the search query parameter
const MaxSearchLength = 100

// Base holds the columns every persisted entity carries
type Base struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the row was soft deleted
func (b *Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// ListFilter narrows a list query. Fields holds per-entity equality
// filters keyed by query parameter name.
type ListFilter struct {
	Search string            `json:"search,omitempty"`
	IDs    []int64           `json:"need_id,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Validate checks the filter bounds
func (f ListFilter) Validate() error {
	if len([]rune(f.Search)) > MaxSearchLength {
		return &ValidationError{Field: "search", Message: fmt.Sprintf("must be at most %d characters", MaxSearchLength)}
	}
	for _, id := range f.IDs {
		if id <= 0 {
			return &ValidationError{Field: "need_id", Message: "must contain positive ids"}
		}
	}
	return nil
}

// RowUpdate is one row of a bulk update
type RowUpdate struct {
	ID      int64
	Changes map[string]any
}

// Changes collects the non-nil fields of a partial update
type Changes map[string]any

// setIfPresent records *ptr under column when ptr is non-nil
func setIfPresent[T any](c Changes, column string, ptr *T) {
	if ptr != nil {
		c[column] = *ptr
	}
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
