// internal/adapters/db/party_repository.go
package db

import (
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

var contactColumns = []string{"name", "country", "address", "phone", "email"}

var contactFilters = FilterMap{
	"country": {Column: "country", Build: eqText},
	"email":   {Column: "email", Build: eqText},
}

func contactValues(c *domain.Contact) []any {
	return []any{c.Name, c.Country, c.Address, c.Phone, c.Email}
}

func contactIdentity(c *domain.Contact) squirrel.Eq {
	return squirrel.Eq{
		"name":    c.Name,
		"country": c.Country,
		"address": c.Address,
		"phone":   c.Phone,
		"email":   c.Email,
	}
}

func scanContact(row pgx.Row, b *domain.Base, c *domain.Contact) error {
	return row.Scan(&b.ID, &c.Name, &c.Country, &c.Address, &c.Phone, &c.Email,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
}

var manufacturerTable = &tableSpec[domain.Manufacturer]{
	entity:   domain.EntityManufacturer,
	table:    "manufacturer",
	columns:  contactColumns,
	values:   func(m *domain.Manufacturer) []any { return contactValues(&m.Contact) },
	base:     func(m *domain.Manufacturer) *domain.Base { return &m.Base },
	identity: func(m *domain.Manufacturer) squirrel.Eq { return contactIdentity(&m.Contact) },
	filters:  contactFilters,
	scan: func(row pgx.Row) (*domain.Manufacturer, error) {
		var m domain.Manufacturer
		if err := scanContact(row, &m.Base, &m.Contact); err != nil {
			return nil, err
		}
		return &m, nil
	},
}

var supplierTable = &tableSpec[domain.Supplier]{
	entity:   domain.EntitySupplier,
	table:    "supplier",
	columns:  contactColumns,
	values:   func(s *domain.Supplier) []any { return contactValues(&s.Contact) },
	base:     func(s *domain.Supplier) *domain.Base { return &s.Base },
	identity: func(s *domain.Supplier) squirrel.Eq { return contactIdentity(&s.Contact) },
	filters:  contactFilters,
	scan: func(row pgx.Row) (*domain.Supplier, error) {
		var s domain.Supplier
		if err := scanContact(row, &s.Base, &s.Contact); err != nil {
			return nil, err
		}
		return &s, nil
	},
}

// NewManufacturerRepository creates a manufacturer repository over q
func NewManufacturerRepository(q Querier, logger *slog.Logger) ports.ManufacturerRepository {
	return newBaseRepository(q, manufacturerTable, logger)
}

// NewSupplierRepository creates a supplier repository over q
func NewSupplierRepository(q Querier, logger *slog.Logger) ports.SupplierRepository {
	return newBaseRepository(q, supplierTable, logger)
}
