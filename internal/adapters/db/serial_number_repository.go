// internal/adapters/db/serial_number_repository.go
package db

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

var serialNumberTable = &tableSpec[domain.SerialNumber]{
	entity: domain.EntitySerialNumber,
	table:  "serial_number",
	columns: []string{
		"warehouse_id", "name", "status", "price_input", "price_output",
		"data_input", "data_output", "employee_id", "buyer_id", "order_id",
	},
	values: func(s *domain.SerialNumber) []any {
		return []any{
			s.WarehouseID, s.Name, string(s.Status), s.PriceInput, s.PriceOutput,
			s.DataInput, s.DataOutput, s.EmployeeID, s.BuyerID, s.OrderID,
		}
	},
	base: func(s *domain.SerialNumber) *domain.Base { return &s.Base },
	scan: scanSerialNumber,
	identity: func(s *domain.SerialNumber) squirrel.Eq {
		return squirrel.Eq{"name": s.Name}
	},
	filters: FilterMap{
		"warehouse_id": {Column: "warehouse_id", Build: eqInt},
		"status":       {Column: "status", Build: eqStatus},
		"order_id":     {Column: "order_id", Build: eqInt},
	},
}

func scanSerialNumber(row pgx.Row) (*domain.SerialNumber, error) {
	var (
		s      domain.SerialNumber
		status string
	)
	err := row.Scan(
		&s.ID, &s.WarehouseID, &s.Name, &status, &s.PriceInput, &s.PriceOutput,
		&s.DataInput, &s.DataOutput, &s.EmployeeID, &s.BuyerID, &s.OrderID,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SerialStatus(status)
	return &s, nil
}

type serialNumberRepository struct {
	*baseRepository[domain.SerialNumber]
}

// NewSerialNumberRepository creates a serial number repository over q
func NewSerialNumberRepository(q Querier, logger *slog.Logger) ports.SerialNumberRepository {
	return newSerialNumberRepository(q, logger)
}

func newSerialNumberRepository(q Querier, logger *slog.Logger) *serialNumberRepository {
	return &serialNumberRepository{newBaseRepository(q, serialNumberTable, logger)}
}

// liveByWarehouse returns the live serial numbers of the given warehouses
// grouped by warehouse id.
func (r *serialNumberRepository) liveByWarehouse(ctx context.Context, warehouseIDs []int64) (map[int64][]domain.SerialNumber, error) {
	out := make(map[int64][]domain.SerialNumber, len(warehouseIDs))
	if len(warehouseIDs) == 0 {
		return out, nil
	}

	serials, err := r.queryMany(ctx, r.live().
		Where(squirrel.Eq{"warehouse_id": warehouseIDs}).
		OrderBy("id"))
	if err != nil {
		return nil, err
	}
	for _, s := range serials {
		out[s.WarehouseID] = append(out[s.WarehouseID], *s)
	}
	return out, nil
}
