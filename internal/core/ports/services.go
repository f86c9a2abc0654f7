// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// EntityService is the application service behind the CRUD endpoints
type EntityService[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id int64, changes domain.Changes) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// WarehouseService adds the nested serial number listing
type WarehouseService interface {
	EntityService[domain.Warehouse]
	ListWithSerials(ctx context.Context, filter domain.ListFilter) ([]*domain.WarehouseWithSerials, error)
}
