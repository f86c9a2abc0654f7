// internal/adapters/spreadsheet/stock_export.go
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// StockSheetName is the sheet of the stock export
const StockSheetName = "Склад"

var stockHeaders = []string{
	"ID", domain.ColumnArticle, domain.ColumnName, domain.ColumnSupplier, domain.ColumnManufacturer,
	domain.ColumnWarranty, "На складе", "Выдано", "Позиция", "Серийных номеров",
}

// WriteStockReport renders the stock report as an xlsx workbook
func WriteStockReport(rows []domain.StockReportRow) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(StockSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range stockHeaders {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt64(r.WarehouseID)
		row.AddCell().SetString(r.Article)
		row.AddCell().SetString(r.Name)
		row.AddCell().SetString(r.Supplier)
		row.AddCell().SetString(r.Manufacturer)
		row.AddCell().SetInt(r.Warranty)
		row.AddCell().SetInt(r.ProductCountInStock)
		row.AddCell().SetInt(r.ProductCountOut)
		row.AddCell().SetString(r.Position)
		row.AddCell().SetInt(r.LiveSerialNumbers)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
