// internal/adapters/db/warehouse_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

var warehouseTable = &tableSpec[domain.Warehouse]{
	entity: domain.EntityWarehouse,
	table:  "warehouse",
	columns: []string{
		"manufacturer_id", "supplier_id", "article", "name", "warranty",
		"product_count_in_stock", "product_count_out", "position", "description",
	},
	values: func(w *domain.Warehouse) []any {
		return []any{
			w.ManufacturerID, w.SupplierID, w.Article, w.Name, w.Warranty,
			w.ProductCountInStock, w.ProductCountOut, w.Position, w.Description,
		}
	},
	base: func(w *domain.Warehouse) *domain.Base { return &w.Base },
	scan: func(row pgx.Row) (*domain.Warehouse, error) {
		var w domain.Warehouse
		err := row.Scan(
			&w.ID, &w.ManufacturerID, &w.SupplierID, &w.Article, &w.Name, &w.Warranty,
			&w.ProductCountInStock, &w.ProductCountOut, &w.Position, &w.Description,
			&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		return &w, nil
	},
	identity: func(w *domain.Warehouse) squirrel.Eq {
		return squirrel.Eq{"name": w.Name, "article": w.Article}
	},
	filters: FilterMap{
		"article":         {Column: "article", Build: eqText},
		"supplier_id":     {Column: "supplier_id", Build: eqInt},
		"manufacturer_id": {Column: "manufacturer_id", Build: eqInt},
	},
}

const liveSerialExists = `EXISTS (SELECT 1 FROM serial_number s WHERE s.warehouse_id = warehouse.id AND s.deleted_at IS NULL)`

type warehouseRepository struct {
	*baseRepository[domain.Warehouse]
	serials *serialNumberRepository
}

// NewWarehouseRepository creates a warehouse repository over q
func NewWarehouseRepository(q Querier, logger *slog.Logger) ports.WarehouseRepository {
	return newWarehouseRepository(q, logger)
}

func newWarehouseRepository(q Querier, logger *slog.Logger) *warehouseRepository {
	return &warehouseRepository{
		baseRepository: newBaseRepository(q, warehouseTable, logger),
		serials:        newSerialNumberRepository(q, logger),
	}
}

// ListWithSerials returns live warehouses matching filter with their live
// serial numbers.
func (r *warehouseRepository) ListWithSerials(ctx context.Context, filter domain.ListFilter) ([]*domain.WarehouseWithSerials, error) {
	q, err := r.spec.filters.Apply(r.live(), filter, r.logger)
	if err != nil {
		return nil, err
	}
	withSerials, err := r.withSerials(ctx, q.OrderBy("id"))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.WarehouseWithSerials, len(withSerials))
	for i := range withSerials {
		out[i] = &withSerials[i]
	}
	return out, nil
}

// byNamesAndArticles returns live warehouses whose name and article are
// both in the given sets.
func (r *warehouseRepository) byNamesAndArticles(ctx context.Context, names, articles []string) ([]domain.WarehouseWithSerials, error) {
	if len(names) == 0 || len(articles) == 0 {
		return nil, nil
	}
	return r.withSerials(ctx, r.live().
		Where(squirrel.Eq{"name": names, "article": articles}).
		OrderBy("id"))
}

// resolveIDs maps product name to warehouse id over live rows whose name
// and article are in the given sets. The newest row wins a repeated name.
func (r *warehouseRepository) resolveIDs(ctx context.Context, names, articles []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	if len(names) == 0 || len(articles) == 0 {
		return ids, nil
	}

	query, args, err := psql.Select("name", "id").
		From(r.spec.table).
		Where("deleted_at IS NULL").
		Where(squirrel.Eq{"name": names, "article": articles}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build warehouse id query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve warehouse ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			id   int64
		)
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse id: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// withActiveSerials returns live warehouses named in names that own at
// least one live serial number, with those serial numbers.
func (r *warehouseRepository) withActiveSerials(ctx context.Context, names []string) ([]domain.WarehouseWithSerials, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.withSerials(ctx, r.live().
		Where(squirrel.Eq{"name": names}).
		Where(liveSerialExists).
		OrderBy("id"))
}

func (r *warehouseRepository) withSerials(ctx context.Context, q squirrel.SelectBuilder) ([]domain.WarehouseWithSerials, error) {
	warehouses, err := r.queryMany(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(warehouses))
	for i, w := range warehouses {
		ids[i] = w.ID
	}
	serials, err := r.serials.liveByWarehouse(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.WarehouseWithSerials, len(warehouses))
	for i, w := range warehouses {
		out[i] = domain.WarehouseWithSerials{
			Warehouse:     *w,
			SerialNumbers: serials[w.ID],
		}
		if out[i].SerialNumbers == nil {
			out[i].SerialNumbers = []domain.SerialNumber{}
		}
	}
	return out, nil
}
