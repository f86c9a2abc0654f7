// internal/core/services/warehouse.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// WarehouseService handles warehouse CRUD and the nested serial listing
type WarehouseService struct {
	*EntityService[domain.Warehouse]
	repo ports.WarehouseRepository
}

// Statically assert that *WarehouseService implements the WarehouseService interface.
var _ ports.WarehouseService = (*WarehouseService)(nil)

// NewWarehouseService creates a new warehouse service. cache may be nil.
func NewWarehouseService(repo ports.WarehouseRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *WarehouseService {
	return &WarehouseService{
		EntityService: newEntityService[domain.Warehouse](domain.EntityWarehouse, repo,
			(*domain.Warehouse).Validate, cache, cacheTTL, logger),
		repo: repo,
	}
}

// ListWithSerials returns live warehouses with their live serial numbers
func (s *WarehouseService) ListWithSerials(ctx context.Context, filter domain.ListFilter) ([]*domain.WarehouseWithSerials, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.ListWithSerials(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return items, nil
}
