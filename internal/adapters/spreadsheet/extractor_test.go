// internal/adapters/spreadsheet/extractor_test.go
package spreadsheet_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-ms/internal/adapters/spreadsheet"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/test/helpers"
)

func TestExtractor_Extract_OrderSheet(t *testing.T) {
	data := helpers.BuildOrderWorkbook(t, domain.OrderSheetName,
		helpers.OrderLine{
			Name: "Router X", Article: "RX-1", Supplier: "Acme", Manufacturer: "Netgear",
			Warranty: "12", Quantity: "2", SerialNumber: "SN1", PriceInput: "100.50",
		},
		helpers.OrderLine{Name: "Router X", Article: "RX-1", SerialNumber: "SN2"},
	)

	wb, err := spreadsheet.NewExtractor(helpers.TestLogger()).Extract(context.Background(), data)
	require.NoError(t, err)

	sheet, err := wb.OrderSheet()
	require.NoError(t, err)
	require.Len(t, sheet, 2)

	assert.Equal(t, 2, sheet[0].Number)
	assert.Equal(t, "Router X", sheet[0].Get(domain.ColumnName))
	assert.Equal(t, "RX-1", sheet[0].Get(domain.ColumnArticle))
	assert.Equal(t, "100.50", sheet[0].Get(domain.ColumnPriceInput))
	assert.Equal(t, 3, sheet[1].Number)
	assert.Equal(t, "SN2", sheet[1].Get(domain.ColumnSerialNumber))
	assert.Equal(t, "", sheet[1].Get(domain.ColumnSupplier))
}

func TestExtractor_Extract_SkipsRepeatedHeaderAndBlankRows(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(domain.OrderSheetName)
	require.NoError(t, err)

	addRow := func(values ...string) {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}
	addRow("", "")
	addRow("Наименование", "Артикул")
	addRow("Switch", "SW-8")
	addRow("", "")
	addRow("Наименование", "Артикул")
	addRow("Hub", "HB-2")

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	wb, err := spreadsheet.NewExtractor(helpers.TestLogger()).Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)

	rows := wb[domain.OrderSheetName]
	require.Len(t, rows, 2)
	assert.Equal(t, "Switch", rows[0].Get(domain.ColumnName))
	assert.Equal(t, "Hub", rows[1].Get(domain.ColumnName))
	assert.Equal(t, 3, rows[0].Number)
	assert.Equal(t, 6, rows[1].Number)
}

func TestExtractor_Extract_NumericCells(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("ORDER")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("Article")
	header.AddCell().SetString("Quantity")
	header.AddCell().SetString("Entry price")

	row := sheet.AddRow()
	row.AddCell().SetString("RX-1")
	row.AddCell().SetInt(3)
	row.AddCell().SetFloat(99.5)

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	wb, err := spreadsheet.NewExtractor(helpers.TestLogger()).Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)

	order, err := wb.OrderSheet()
	require.NoError(t, err)
	require.Len(t, order, 1)
	assert.Equal(t, "3", order[0].Get(domain.ColumnQuantity))
	assert.Equal(t, "99.5", order[0].Get(domain.ColumnPriceInput))
}

func TestExtractor_Extract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not_a_workbook", data: []byte("name,article\nRouter,RX-1\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spreadsheet.NewExtractor(helpers.TestLogger()).Extract(context.Background(), tt.data)
			require.Error(t, err)

			var mErr *domain.MalformedWorkbookError
			assert.True(t, errors.As(err, &mErr))
		})
	}
}

func TestWriteStockReport_RoundTrip(t *testing.T) {
	data, err := spreadsheet.WriteStockReport([]domain.StockReportRow{
		{WarehouseID: 1, Article: "RX-1", Name: "Router X", Supplier: "Acme", ProductCountInStock: 2, LiveSerialNumbers: 2},
	})
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Equal(t, spreadsheet.StockSheetName, file.Sheets[0].Name)

	wb, err := spreadsheet.NewExtractor(helpers.TestLogger()).Extract(context.Background(), data)
	require.NoError(t, err)

	rows := wb[spreadsheet.StockSheetName]
	require.Len(t, rows, 1)
	assert.Equal(t, "Router X", rows[0].Get(domain.ColumnName))
	assert.Equal(t, "Acme", rows[0].Get(domain.ColumnSupplier))
	assert.Equal(t, "2", rows[0].Cells["На складе"])
}
