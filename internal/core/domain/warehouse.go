// internal/core/domain/warehouse.go
package domain

import "fmt"

// Warehouse is a stock keeping unit. ProductCountInStock is derived from
// the serial numbers it owns and is rewritten by every ingest.
type Warehouse struct {
	Base
	ManufacturerID      *int64  `json:"manufacturer_id"`
	SupplierID          *int64  `json:"supplier_id"`
	Article             string  `json:"article"`
	Name                string  `json:"name"`
	Warranty            int     `json:"warranty"`
	ProductCountInStock *int    `json:"product_count_in_stock"`
	ProductCountOut     *int    `json:"product_count_out"`
	Position            *string `json:"position"`
	Description         *string `json:"description"`
}

// Validate performs domain validation on the warehouse
func (w *Warehouse) Validate() error {
	if err := requireText("name", w.Name); err != nil {
		return err
	}
	if err := requireText("article", w.Article); err != nil {
		return err
	}
	if w.Warranty < 0 {
		return &ValidationError{Field: "warranty", Message: "cannot be negative"}
	}
	if w.ProductCountInStock != nil && *w.ProductCountInStock < 0 {
		return &ValidationError{Field: "product_count_in_stock", Message: "cannot be negative"}
	}
	if w.ProductCountOut != nil && *w.ProductCountOut < 0 {
		return &ValidationError{Field: "product_count_out", Message: "cannot be negative"}
	}
	return nil
}

// WarehouseWithSerials is a warehouse with its live serial numbers
type WarehouseWithSerials struct {
	Warehouse
	SerialNumbers []SerialNumber `json:"serial_numbers"`
}

// WarehousePatch is a partial update of a warehouse. Absent fields,
// including the stock counters, are left untouched.
type WarehousePatch struct {
	ManufacturerID      *int64  `json:"manufacturer_id,omitempty"`
	SupplierID          *int64  `json:"supplier_id,omitempty"`
	Article             *string `json:"article,omitempty"`
	Name                *string `json:"name,omitempty"`
	Warranty            *int    `json:"warranty,omitempty"`
	ProductCountInStock *int    `json:"product_count_in_stock,omitempty"`
	ProductCountOut     *int    `json:"product_count_out,omitempty"`
	Position            *string `json:"position,omitempty"`
	Description         *string `json:"description,omitempty"`
}

// Validate checks the fields present in the patch
func (p *WarehousePatch) Validate() error {
	if p.Name != nil {
		if err := requireText("name", *p.Name); err != nil {
			return err
		}
	}
	if p.Article != nil {
		if err := requireText("article", *p.Article); err != nil {
			return err
		}
	}
	for field, v := range map[string]*int{
		"warranty":               p.Warranty,
		"product_count_in_stock": p.ProductCountInStock,
		"product_count_out":      p.ProductCountOut,
	} {
		if v != nil && *v < 0 {
			return &ValidationError{Field: field, Message: "cannot be negative"}
		}
	}
	return nil
}

// Changes returns the columns present in the patch
func (p *WarehousePatch) Changes() Changes {
	c := Changes{}
	setIfPresent(c, "manufacturer_id", p.ManufacturerID)
	setIfPresent(c, "supplier_id", p.SupplierID)
	setIfPresent(c, "article", p.Article)
	setIfPresent(c, "name", p.Name)
	setIfPresent(c, "warranty", p.Warranty)
	setIfPresent(c, "product_count_in_stock", p.ProductCountInStock)
	setIfPresent(c, "product_count_out", p.ProductCountOut)
	setIfPresent(c, "position", p.Position)
	setIfPresent(c, "description", p.Description)
	return c
}

// StockCount is the recounted in-stock quantity of one warehouse
type StockCount struct {
	WarehouseID int64  `json:"warehouse_id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
}

// RowUpdate converts the count into a bulk update row
func (s StockCount) RowUpdate() RowUpdate {
	return RowUpdate{
		ID:      s.WarehouseID,
		Changes: map[string]any{"product_count_in_stock": s.Count},
	}
}

func (s StockCount) String() string {
	return fmt.Sprintf("%s#%d=%d", s.Name, s.WarehouseID, s.Count)
}

// StockReportRow is one line of the stock export
type StockReportRow struct {
	WarehouseID         int64  `json:"warehouse_id"`
	Article             string `json:"article"`
	Name                string `json:"name"`
	Supplier            string `json:"supplier"`
	Manufacturer        string `json:"manufacturer"`
	Warranty            int    `json:"warranty"`
	ProductCountInStock int    `json:"product_count_in_stock"`
	ProductCountOut     int    `json:"product_count_out"`
	Position            string `json:"position"`
	LiveSerialNumbers   int    `json:"live_serial_numbers"`
}
