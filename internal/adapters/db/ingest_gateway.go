// internal/adapters/db/ingest_gateway.go
package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// ingestGateway binds the entity repositories to one transaction
type ingestGateway struct {
	warehouses    *warehouseRepository
	serials       *serialNumberRepository
	suppliers     ports.SupplierRepository
	manufacturers ports.ManufacturerRepository
}

// NewIngestGateway creates a gateway whose statements run on q, normally
// a pgx.Tx.
func NewIngestGateway(q Querier, logger *slog.Logger) ports.IngestGateway {
	return &ingestGateway{
		warehouses:    newWarehouseRepository(q, logger),
		serials:       newSerialNumberRepository(q, logger),
		suppliers:     NewSupplierRepository(q, logger),
		manufacturers: NewManufacturerRepository(q, logger),
	}
}

func (g *ingestGateway) FetchWarehousesByNamesAndArticles(ctx context.Context, names, articles []string) ([]domain.WarehouseWithSerials, error) {
	return g.warehouses.byNamesAndArticles(ctx, names, articles)
}

func (g *ingestGateway) ListSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return g.suppliers.List(ctx, domain.ListFilter{})
}

func (g *ingestGateway) ListManufacturers(ctx context.Context) ([]*domain.Manufacturer, error) {
	return g.manufacturers.List(ctx, domain.ListFilter{})
}

func (g *ingestGateway) BulkInsertWarehouses(ctx context.Context, warehouses []*domain.Warehouse) error {
	return g.warehouses.BulkInsert(ctx, warehouses)
}

func (g *ingestGateway) ResolveWarehouseIDs(ctx context.Context, names, articles []string) (map[string]int64, error) {
	return g.warehouses.resolveIDs(ctx, names, articles)
}

func (g *ingestGateway) BulkInsertSerialNumbers(ctx context.Context, serials []*domain.SerialNumber) error {
	return g.serials.BulkInsert(ctx, serials)
}

func (g *ingestGateway) FetchWarehousesWithActiveSerials(ctx context.Context, names []string) ([]domain.WarehouseWithSerials, error) {
	return g.warehouses.withActiveSerials(ctx, names)
}

func (g *ingestGateway) BulkUpdateStock(ctx context.Context, counts []domain.StockCount) error {
	return g.warehouses.BulkUpdate(ctx, lo.Map(counts, func(c domain.StockCount, _ int) domain.RowUpdate {
		return c.RowUpdate()
	}))
}

// Transactor runs ingest work inside a Database transaction
type Transactor struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *Transactor implements the Transactor interface.
var _ ports.Transactor = (*Transactor)(nil)

// NewTransactor creates a new transactor
func NewTransactor(db *Database, logger *slog.Logger) *Transactor {
	return &Transactor{db: db, logger: logger}
}

// WithinTransaction runs fn with a gateway bound to a fresh transaction
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, gw ports.IngestGateway) error) error {
	return t.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewIngestGateway(tx, t.logger))
	})
}
