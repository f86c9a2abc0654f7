// internal/core/domain/order.go
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderSheetName is the sheet an ingest reads; OrderSheetAlias is accepted too
const (
	OrderSheetName  = "ЗАКАЗ"
	OrderSheetAlias = "ORDER"
)

// Order sheet column headers, normalised with NormalizeHeader
const (
	ColumnName         = "Наименование"
	ColumnArticle      = "Артикул"
	ColumnSupplier     = "Поставщик"
	ColumnManufacturer = "Производитель"
	ColumnWarranty     = "Гарантия, мес."
	ColumnQuantity     = "кол-во по позиции"
	ColumnSerialNumber = "Серийный номер S/N"
	ColumnPriceInput   = "Цена входа"
)

var columnAliases = map[string][]string{
	ColumnName:         {"Name"},
	ColumnArticle:      {"Article"},
	ColumnSupplier:     {"Supplier"},
	ColumnManufacturer: {"Manufacturer"},
	ColumnWarranty:     {"Warranty, months"},
	ColumnQuantity:     {"Quantity"},
	ColumnSerialNumber: {"Serial number S/N", "S/N"},
	ColumnPriceInput:   {"Entry price"},
}

// NormalizeHeader collapses runs of whitespace, including line breaks
// inside a header cell, and trims the ends.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(h), " ")
}

// Workbook maps sheet name to its data rows
type Workbook map[string]Sheet

// Sheet is the ordered list of data rows of one sheet
type Sheet []Row

// Row is one data row keyed by normalised header. Number is the 1-based
// row index in the sheet, header included.
type Row struct {
	Number int
	Cells  map[string]string
}

// Get returns the cell under column or one of its aliases
func (r Row) Get(column string) string {
	if v, ok := r.Cells[column]; ok {
		return strings.TrimSpace(v)
	}
	for _, alias := range columnAliases[column] {
		if v, ok := r.Cells[alias]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// OrderSheet returns the order sheet, if present and non-empty
func (w Workbook) OrderSheet() (Sheet, error) {
	for _, name := range []string{OrderSheetName, OrderSheetAlias} {
		if sheet, ok := w[name]; ok && len(sheet) > 0 {
			return sheet, nil
		}
	}
	return nil, &MissingSheetError{Sheet: OrderSheetName}
}

// OrderRow is a typed order sheet row
type OrderRow struct {
	Number       int
	Name         string
	Article      string
	Supplier     string
	Manufacturer string
	Warranty     int
	Quantity     *int
	SerialNumber string
	PriceInput   decimal.Decimal
}

// ParseOrderRows converts sheet rows into typed rows. Rows without an
// article are kept as is; numeric cells of such rows are not interpreted.
func ParseOrderRows(sheet Sheet) ([]OrderRow, error) {
	rows := make([]OrderRow, 0, len(sheet))
	for _, r := range sheet {
		row := OrderRow{
			Number:       r.Number,
			Name:         r.Get(ColumnName),
			Article:      r.Get(ColumnArticle),
			Supplier:     r.Get(ColumnSupplier),
			Manufacturer: r.Get(ColumnManufacturer),
			SerialNumber: r.Get(ColumnSerialNumber),
		}
		if row.Article == "" {
			rows = append(rows, row)
			continue
		}

		warranty, err := parseCount(r, ColumnWarranty)
		if err != nil {
			return nil, err
		}
		if warranty != nil {
			row.Warranty = *warranty
		}
		if row.Quantity, err = parseCount(r, ColumnQuantity); err != nil {
			return nil, err
		}
		if row.PriceInput, err = parseMoney(r, ColumnPriceInput); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCount(r Row, column string) (*int, error) {
	raw := r.Get(column)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(normalizeNumber(raw))
	if err != nil || !d.Equal(d.Truncate(0)) || d.IsNegative() {
		return nil, cellError(r.Number, column, raw, err)
	}
	n := int(d.IntPart())
	return &n, nil
}

func parseMoney(r Row, column string) (decimal.Decimal, error) {
	raw := r.Get(column)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(normalizeNumber(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero, cellError(r.Number, column, raw, err)
	}
	return d, nil
}

func normalizeNumber(raw string) string {
	raw = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(raw)
	return strings.ReplaceAll(raw, ",", ".")
}

func cellError(row int, column, raw string, err error) error {
	return &MalformedWorkbookError{
		Detail: fmt.Sprintf("row %d: column %q has invalid value %q", row, column, raw),
		Err:    err,
	}
}

// ReconcilePlan is the outcome of reconciling order rows with stored state
type ReconcilePlan struct {
	Warehouses []*Warehouse
	// SerialNumbers maps owning product name to staged serial numbers
	SerialNumbers map[string][]*SerialNumber
	// Owners keeps product names in first-seen order
	Owners      []string
	Names       []string
	Articles    []string
	RowsSkipped int
}

// SerialCount returns the number of staged serial numbers
func (p *ReconcilePlan) SerialCount() int {
	n := 0
	for _, s := range p.SerialNumbers {
		n += len(s)
	}
	return n
}

// AttachWarehouseIDs flattens the staged serial numbers in owner order and
// sets their warehouse ids. It fails when an owner has no resolved id.
func (p *ReconcilePlan) AttachWarehouseIDs(ids map[string]int64) ([]*SerialNumber, error) {
	out := make([]*SerialNumber, 0, p.SerialCount())
	for _, owner := range p.Owners {
		serials := p.SerialNumbers[owner]
		if len(serials) == 0 {
			continue
		}
		id, ok := ids[owner]
		if !ok {
			return nil, &BulkWriteError{
				Table: EntitySerialNumber,
				Err:   fmt.Errorf("warehouse %q was not resolved", owner),
			}
		}
		for _, s := range serials {
			s.WarehouseID = id
			out = append(out, s)
		}
	}
	return out, nil
}
