// internal/adapters/spreadsheet/extractor.go
package spreadsheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// Extractor reads xlsx workbooks into header keyed rows. The first
// non-empty row of a sheet is its header; repeated header rows are
// dropped.
type Extractor struct {
	logger *slog.Logger
}

// Statically assert that *Extractor implements the WorkbookExtractor interface.
var _ ports.WorkbookExtractor = (*Extractor)(nil)

// NewExtractor creates a new workbook extractor
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With(slog.String("component", "spreadsheet")),
	}
}

// Extract parses data as an xlsx workbook
func (e *Extractor) Extract(ctx context.Context, data []byte) (domain.Workbook, error) {
	if len(data) == 0 {
		return nil, &domain.MalformedWorkbookError{Detail: "file is empty"}
	}

	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, &domain.MalformedWorkbookError{Detail: "file is not a valid xlsx workbook", Err: err}
	}

	wb := make(domain.Workbook, len(file.Sheets))
	for _, sheet := range file.Sheets {
		rows, err := e.readSheet(ctx, sheet)
		if err != nil {
			return nil, err
		}
		wb[strings.TrimSpace(sheet.Name)] = rows
		e.logger.DebugContext(ctx, "sheet read",
			slog.String("sheet", sheet.Name),
			slog.Int("rows", len(rows)))
	}

	return wb, nil
}

func (e *Extractor) readSheet(ctx context.Context, sheet *xlsx.Sheet) (domain.Sheet, error) {
	var (
		headers map[int]string
		first   string
		rows    domain.Sheet
	)

	err := sheet.ForEachRow(func(r *xlsx.Row) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		cells := readCells(r)
		if len(cells) == 0 {
			return nil
		}

		if headers == nil {
			headers = make(map[int]string, len(cells))
			for col, v := range cells {
				if h := domain.NormalizeHeader(v); h != "" {
					headers[col] = h
				}
			}
			first = headers[minKey(headers)]
			return nil
		}

		if first != "" && domain.NormalizeHeader(cells[minKey(headers)]) == first {
			return nil
		}

		row := domain.Row{
			Number: r.GetCoordinate() + 1,
			Cells:  make(map[string]string, len(headers)),
		}
		for col, h := range headers {
			row.Cells[h] = cells[col]
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.MalformedWorkbookError{
			Detail: fmt.Sprintf("sheet %s could not be read", sheet.Name),
			Err:    err,
		}
	}

	return rows, nil
}

// readCells returns the non-blank cells of r keyed by column index.
// Numeric cells keep their stored value so number formats do not leak
// into parsing.
func readCells(r *xlsx.Row) map[int]string {
	cells := make(map[int]string)
	_ = r.ForEachCell(func(c *xlsx.Cell) error {
		col, _ := c.GetCoordinates()
		v := c.Value
		if c.Type() != xlsx.CellTypeNumeric {
			if formatted, err := c.FormattedValue(); err == nil {
				v = formatted
			}
		}
		if v = strings.TrimSpace(v); v != "" {
			cells[col] = v
		}
		return nil
	}, xlsx.SkipEmptyCells)
	return cells
}

func minKey(m map[int]string) int {
	k := -1
	for col := range m {
		if k == -1 || col < k {
			k = col
		}
	}
	return k
}
