// internal/core/ports/ingest.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// IngestGateway is the transaction scoped persistence used by a workbook
// ingest. Bulk failures are reported as *domain.BulkWriteError.
type IngestGateway interface {
	FetchWarehousesByNamesAndArticles(ctx context.Context, names, articles []string) ([]domain.WarehouseWithSerials, error)
	ListSuppliers(ctx context.Context) ([]*domain.Supplier, error)
	ListManufacturers(ctx context.Context) ([]*domain.Manufacturer, error)
	BulkInsertWarehouses(ctx context.Context, warehouses []*domain.Warehouse) error
	ResolveWarehouseIDs(ctx context.Context, names, articles []string) (map[string]int64, error)
	BulkInsertSerialNumbers(ctx context.Context, serials []*domain.SerialNumber) error
	FetchWarehousesWithActiveSerials(ctx context.Context, names []string) ([]domain.WarehouseWithSerials, error)
	BulkUpdateStock(ctx context.Context, counts []domain.StockCount) error
}

// Transactor runs fn inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, gw IngestGateway) error) error
}

// WorkbookExtractor turns an uploaded workbook into sheet rows
type WorkbookExtractor interface {
	Extract(ctx context.Context, data []byte) (domain.Workbook, error)
}

// EventPublisher announces committed ingests to other services
type EventPublisher interface {
	PublishIngestCompleted(ctx context.Context, report *domain.IngestReport) error
	PublishStockRecounted(ctx context.Context, counts []domain.StockCount) error
	Close() error
}

// IngestService imports a workbook upload into the warehouse tables
type IngestService interface {
	Ingest(ctx context.Context, data []byte) (*domain.IngestReport, error)
}
