// internal/core/domain/serial_number.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SerialStatus tracks where a physical unit currently is. The values are
// the labels stored in the database.
type SerialStatus string

// Serial number status constants
const (
	StatusWarehouse SerialStatus = "Склад"
	StatusSupplier  SerialStatus = "Заказчик"
	StatusSold      SerialStatus = "Продано"
	StatusExecutor  SerialStatus = "Исполнитель"
)

var statusCodes = map[string]SerialStatus{
	"WAREHOUSE": StatusWarehouse,
	"SUPPLIER":  StatusSupplier,
	"SOLD":      StatusSold,
	"EXECUTOR":  StatusExecutor,
}

// ParseSerialStatus accepts either the stored label or the upper case code
func ParseSerialStatus(s string) (SerialStatus, bool) {
	s = strings.TrimSpace(s)
	if st, ok := statusCodes[strings.ToUpper(s)]; ok {
		return st, true
	}
	switch st := SerialStatus(s); st {
	case StatusWarehouse, StatusSupplier, StatusSold, StatusExecutor:
		return st, true
	}
	return "", false
}

// SerialNumber is one physical unit of a warehouse product
type SerialNumber struct {
	Base
	WarehouseID int64            `json:"warehouse_id"`
	Name        string           `json:"name"`
	Status      SerialStatus     `json:"status"`
	PriceInput  decimal.Decimal  `json:"price_input"`
	PriceOutput *decimal.Decimal `json:"price_output"`
	DataInput   time.Time        `json:"data_input"`
	DataOutput  *time.Time       `json:"data_output"`
	EmployeeID  *int64           `json:"employee_id"`
	BuyerID     *int64           `json:"buyer_id"`
	OrderID     *int64           `json:"order_id"`
}

// Validate performs domain validation on the serial number
func (s *SerialNumber) Validate() error {
	if s.WarehouseID <= 0 {
		return &ValidationError{Field: "warehouse_id", Message: "is required"}
	}
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	if _, ok := ParseSerialStatus(string(s.Status)); !ok {
		return &ValidationError{Field: "status", Message: "is not a known status"}
	}
	if s.PriceInput.IsNegative() {
		return &ValidationError{Field: "price_input", Message: "cannot be negative"}
	}
	if s.PriceOutput != nil && s.PriceOutput.IsNegative() {
		return &ValidationError{Field: "price_output", Message: "cannot be negative"}
	}
	return nil
}

// SerialNumberPatch is a partial update of a serial number
type SerialNumberPatch struct {
	WarehouseID *int64           `json:"warehouse_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Status      *SerialStatus    `json:"status,omitempty"`
	PriceInput  *decimal.Decimal `json:"price_input,omitempty"`
	PriceOutput *decimal.Decimal `json:"price_output,omitempty"`
	DataInput   *time.Time       `json:"data_input,omitempty"`
	DataOutput  *time.Time       `json:"data_output,omitempty"`
	EmployeeID  *int64           `json:"employee_id,omitempty"`
	BuyerID     *int64           `json:"buyer_id,omitempty"`
	OrderID     *int64           `json:"order_id,omitempty"`
}

// Validate checks the fields present in the patch
func (p *SerialNumberPatch) Validate() error {
	if p.Name != nil {
		if err := requireText("name", *p.Name); err != nil {
			return err
		}
	}
	if p.Status != nil {
		st, ok := ParseSerialStatus(string(*p.Status))
		if !ok {
			return &ValidationError{Field: "status", Message: "is not a known status"}
		}
		*p.Status = st
	}
	if p.PriceInput != nil && p.PriceInput.IsNegative() {
		return &ValidationError{Field: "price_input", Message: "cannot be negative"}
	}
	return nil
}

// Changes returns the columns present in the patch
func (p *SerialNumberPatch) Changes() Changes {
	c := Changes{}
	setIfPresent(c, "warehouse_id", p.WarehouseID)
	setIfPresent(c, "name", p.Name)
	if p.Status != nil {
		c["status"] = string(*p.Status)
	}
	setIfPresent(c, "price_input", p.PriceInput)
	setIfPresent(c, "price_output", p.PriceOutput)
	setIfPresent(c, "data_input", p.DataInput)
	setIfPresent(c, "data_output", p.DataOutput)
	setIfPresent(c, "employee_id", p.EmployeeID)
	setIfPresent(c, "buyer_id", p.BuyerID)
	setIfPresent(c, "order_id", p.OrderID)
	return c
}
