// internal/adapters/db/stock_report.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// StockReportReader reads the stock export through database/sql
type StockReportReader struct {
	db     *sql.DB
	logger *slog.Logger
}

// Statically assert that *StockReportReader implements the StockReporter interface.
var _ ports.StockReporter = (*StockReportReader)(nil)

// NewStockReportReader creates a new stock report reader
func NewStockReportReader(db *sql.DB, logger *slog.Logger) *StockReportReader {
	return &StockReportReader{
		db:     db,
		logger: logger.With(slog.String("repository", "stock_report")),
	}
}

// StockReport returns one row per live warehouse, optionally filtered by a
// case-insensitive name substring.
func (r *StockReportReader) StockReport(ctx context.Context, search string) ([]domain.StockReportRow, error) {
	q := psql.Select(
		"w.id", "w.article", "w.name",
		"COALESCE(s.name, '')", "COALESCE(m.name, '')",
		"w.warranty",
		"COALESCE(w.product_count_in_stock, 0)", "COALESCE(w.product_count_out, 0)",
		"COALESCE(w.position, '')",
		"(SELECT count(*) FROM serial_number sn WHERE sn.warehouse_id = w.id AND sn.deleted_at IS NULL)",
	).
		From("warehouse w").
		LeftJoin("supplier s ON s.id = w.supplier_id").
		LeftJoin("manufacturer m ON m.id = w.manufacturer_id").
		Where("w.deleted_at IS NULL").
		OrderBy("w.id")
	if search != "" {
		q = q.Where(squirrel.ILike{"w.name": "%" + escapeLike(search) + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock report query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock report: %w", err)
	}
	defer rows.Close()

	report := make([]domain.StockReportRow, 0)
	for rows.Next() {
		var row domain.StockReportRow
		if err := rows.Scan(
			&row.WarehouseID, &row.Article, &row.Name,
			&row.Supplier, &row.Manufacturer,
			&row.Warranty,
			&row.ProductCountInStock, &row.ProductCountOut,
			&row.Position,
			&row.LiveSerialNumbers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock report: %w", err)
	}

	r.logger.DebugContext(ctx, "stock report read", slog.Int("rows", len(report)))
	return report, nil
}
