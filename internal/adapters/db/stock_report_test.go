// internal/adapters/db/stock_report_test.go
package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/test/helpers"
)

var stockReportColumns = []string{
	"id", "article", "name", "supplier", "manufacturer", "warranty",
	"product_count_in_stock", "product_count_out", "position", "live",
}

func TestStockReportReader_StockReport(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		setupMock  func(mock sqlmock.Sqlmock)
		wantRows   []domain.StockReportRow
		wantErrMsg string
	}{
		{
			name: "all_warehouses",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM warehouse w LEFT JOIN supplier s .* WHERE w.deleted_at IS NULL ORDER BY w.id`).
					WillReturnRows(sqlmock.NewRows(stockReportColumns).
						AddRow(1, "RX-1", "Router X", "Acme", "Netgear", 12, 2, 0, "A1", 2).
						AddRow(2, "SW-8", "Switch 8", "", "", 0, 0, 1, "", 0))
			},
			wantRows: []domain.StockReportRow{
				{WarehouseID: 1, Article: "RX-1", Name: "Router X", Supplier: "Acme", Manufacturer: "Netgear",
					Warranty: 12, ProductCountInStock: 2, Position: "A1", LiveSerialNumbers: 2},
				{WarehouseID: 2, Article: "SW-8", Name: "Switch 8", ProductCountOut: 1},
			},
		},
		{
			name:   "search_filters_by_name",
			search: "router",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`w.name ILIKE \$1`).
					WithArgs("%router%").
					WillReturnRows(sqlmock.NewRows(stockReportColumns))
			},
			wantRows: []domain.StockReportRow{},
		},
		{
			name: "query_error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM warehouse w`).
					WillReturnError(errors.New("connection reset"))
			},
			wantErrMsg: "failed to query stock report",
		},
		{
			name: "scan_error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM warehouse w`).
					WillReturnRows(sqlmock.NewRows(stockReportColumns).
						AddRow("not-a-number", "RX-1", "Router X", "", "", 0, 0, 0, "", 0))
			},
			wantErrMsg: "failed to scan stock report row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, sqlDB := helpers.SetupMockDB(t)
			tt.setupMock(mock)

			reader := db.NewStockReportReader(sqlDB, helpers.TestLogger())
			rows, err := reader.StockReport(context.Background(), tt.search)

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRows, rows)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
