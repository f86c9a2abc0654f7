// internal/core/ports/repository.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// Repository is the persistence capability shared by every entity.
// Lookups ignore soft deleted rows; GetOne returns nil, nil when the id
// does not match a live row.
type Repository[T any] interface {
	GetOne(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*T, error)
	FindDuplicate(ctx context.Context, entity *T) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id int64, changes domain.Changes) (*T, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	BulkInsert(ctx context.Context, entities []*T) error
	BulkUpdate(ctx context.Context, updates []domain.RowUpdate) error
}

// ManufacturerRepository persists manufacturers
type ManufacturerRepository interface {
	Repository[domain.Manufacturer]
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	Repository[domain.Supplier]
}

// SerialNumberRepository persists serial numbers
type SerialNumberRepository interface {
	Repository[domain.SerialNumber]
}

// WarehouseRepository persists warehouses and reads them with their
// serial numbers.
type WarehouseRepository interface {
	Repository[domain.Warehouse]
	ListWithSerials(ctx context.Context, filter domain.ListFilter) ([]*domain.WarehouseWithSerials, error)
}

// StockReporter reads the denormalised stock export
type StockReporter interface {
	StockReport(ctx context.Context, search string) ([]domain.StockReportRow, error)
}
