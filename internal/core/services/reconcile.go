// internal/core/services/reconcile.go
package services

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// OrderKeys returns the distinct product names and articles of the rows
// that describe a product, in first-seen order.
func OrderKeys(rows []domain.OrderRow) (names, articles []string) {
	products := lo.Filter(rows, func(r domain.OrderRow, _ int) bool {
		return r.Article != ""
	})
	names = lo.Uniq(lo.FilterMap(products, func(r domain.OrderRow, _ int) (string, bool) {
		return r.Name, r.Name != ""
	}))
	articles = lo.Uniq(lo.Map(products, func(r domain.OrderRow, _ int) string {
		return r.Article
	}))
	return names, articles
}

// Reconcile decides which warehouses and serial numbers an order sheet adds
// to the stored state. Warehouses are matched by product name, serial
// numbers by S/N. The first occurrence of a repeated S/N wins. Rows
// without an article are skipped; product rows without a supplier or a
// manufacturer fail the whole sheet.
func Reconcile(
	rows []domain.OrderRow,
	existing []domain.WarehouseWithSerials,
	suppliers map[string]int64,
	manufacturers map[string]int64,
) (*domain.ReconcilePlan, error) {
	names, articles := OrderKeys(rows)
	plan := &domain.ReconcilePlan{
		SerialNumbers: make(map[string][]*domain.SerialNumber),
		Names:         names,
		Articles:      articles,
	}

	knownWarehouses := make(map[string]struct{}, len(existing))
	knownSerials := make(map[string]struct{})
	for _, w := range existing {
		if w.IsDeleted() {
			continue
		}
		knownWarehouses[w.Name] = struct{}{}
		for _, sn := range w.SerialNumbers {
			if !sn.IsDeleted() {
				knownSerials[sn.Name] = struct{}{}
			}
		}
	}

	for _, row := range rows {
		if row.Article == "" {
			plan.RowsSkipped++
			continue
		}
		if row.Supplier == "" {
			return nil, &domain.MissingSupplierError{Row: row.Number, Article: row.Article}
		}
		if row.Manufacturer == "" {
			return nil, &domain.MissingManufacturerError{Row: row.Number, Article: row.Article}
		}
		if row.Name == "" {
			return nil, &domain.MalformedWorkbookError{
				Detail: fmt.Sprintf("row %d: product name is empty (article %q)", row.Number, row.Article),
			}
		}

		if _, ok := knownWarehouses[row.Name]; !ok {
			plan.Warehouses = append(plan.Warehouses, &domain.Warehouse{
				ManufacturerID:      lookupID(manufacturers, row.Manufacturer),
				SupplierID:          lookupID(suppliers, row.Supplier),
				Article:             row.Article,
				Name:                row.Name,
				Warranty:            row.Warranty,
				ProductCountInStock: row.Quantity,
			})
			knownWarehouses[row.Name] = struct{}{}
		}

		if row.SerialNumber == "" {
			continue
		}
		if _, ok := knownSerials[row.SerialNumber]; ok {
			continue
		}
		if _, ok := plan.SerialNumbers[row.Name]; !ok {
			plan.Owners = append(plan.Owners, row.Name)
		}
		plan.SerialNumbers[row.Name] = append(plan.SerialNumbers[row.Name], &domain.SerialNumber{
			Name:       row.SerialNumber,
			Status:     domain.StatusWarehouse,
			PriceInput: row.PriceInput,
		})
		knownSerials[row.SerialNumber] = struct{}{}
	}

	return plan, nil
}

// RecountStock derives the in-stock count of each warehouse from its live
// serial numbers.
func RecountStock(warehouses []domain.WarehouseWithSerials) []domain.StockCount {
	return lo.Map(warehouses, func(w domain.WarehouseWithSerials, _ int) domain.StockCount {
		live := lo.CountBy(w.SerialNumbers, func(sn domain.SerialNumber) bool {
			return !sn.IsDeleted()
		})
		return domain.StockCount{WarehouseID: w.ID, Name: w.Name, Count: live}
	})
}

func lookupID(ids map[string]int64, name string) *int64 {
	if id, ok := ids[name]; ok {
		return lo.ToPtr(id)
	}
	return nil
}

func supplierIDs(suppliers []*domain.Supplier) map[string]int64 {
	return lo.SliceToMap(suppliers, func(s *domain.Supplier) (string, int64) {
		return s.Name, s.ID
	})
}

func manufacturerIDs(manufacturers []*domain.Manufacturer) map[string]int64 {
	return lo.SliceToMap(manufacturers, func(m *domain.Manufacturer) (string, int64) {
		return m.Name, m.ID
	})
}
