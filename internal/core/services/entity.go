// internal/core/services/entity.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// CacheKey returns the cache key of a single entity
func CacheKey(entity string, id int64) string {
	return fmt.Sprintf("wh:%s:%d", entity, id)
}

// CachePattern matches every cached entity of one kind
func CachePattern(entity string) string {
	return fmt.Sprintf("wh:%s:*", entity)
}

// EntityService implements the CRUD rules shared by all entities: create
// refuses live duplicates, update and delete refuse unknown ids, delete
// is soft.
type EntityService[T any] struct {
	entity   string
	repo     ports.Repository[T]
	validate func(*T) error
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Statically assert the concrete services satisfy their ports.
var (
	_ ports.EntityService[domain.Manufacturer] = (*EntityService[domain.Manufacturer])(nil)
	_ ports.EntityService[domain.Supplier]     = (*EntityService[domain.Supplier])(nil)
	_ ports.EntityService[domain.SerialNumber] = (*EntityService[domain.SerialNumber])(nil)
)

func newEntityService[T any](
	entity string,
	repo ports.Repository[T],
	validate func(*T) error,
	cache ports.CacheRepository,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *EntityService[T] {
	return &EntityService[T]{
		entity:   entity,
		repo:     repo,
		validate: validate,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With(slog.String("service", entity)),
	}
}

// NewManufacturerService creates the manufacturer service. cache may be nil.
func NewManufacturerService(repo ports.ManufacturerRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *EntityService[domain.Manufacturer] {
	return newEntityService[domain.Manufacturer](domain.EntityManufacturer, repo,
		func(m *domain.Manufacturer) error { return m.Contact.Validate() }, cache, cacheTTL, logger)
}

// NewSupplierService creates the supplier service. cache may be nil.
func NewSupplierService(repo ports.SupplierRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *EntityService[domain.Supplier] {
	return newEntityService[domain.Supplier](domain.EntitySupplier, repo,
		func(s *domain.Supplier) error { return s.Contact.Validate() }, cache, cacheTTL, logger)
}

// NewSerialNumberService creates the serial number service. cache may be nil.
func NewSerialNumberService(repo ports.SerialNumberRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *EntityService[domain.SerialNumber] {
	return newEntityService[domain.SerialNumber](domain.EntitySerialNumber, repo,
		(*domain.SerialNumber).Validate, cache, cacheTTL, logger)
}

// Get returns a live entity or a *domain.NotFoundError
func (s *EntityService[T]) Get(ctx context.Context, id int64) (*T, error) {
	if s.cache == nil {
		return s.load(ctx, id)
	}

	var entity T
	err := s.cache.GetOrSet(ctx, CacheKey(s.entity, id), &entity, func() (interface{}, error) {
		return s.load(ctx, id)
	}, s.cacheTTL)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return nil, nf
		}
		s.logger.WarnContext(ctx, "cache lookup failed, reading from database",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return s.load(ctx, id)
	}
	return &entity, nil
}

func (s *EntityService[T]) load(ctx context.Context, id int64) (*T, error) {
	entity, err := s.repo.GetOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.entity, err)
	}
	if entity == nil {
		return nil, &domain.NotFoundError{Entity: s.entity, ID: id, Op: domain.OpGet}
	}
	return entity, nil
}

// List returns the live entities matching filter
func (s *EntityService[T]) List(ctx context.Context, filter domain.ListFilter) ([]*T, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.entity, err)
	}
	return items, nil
}

// Create stores entity unless a live duplicate exists
func (s *EntityService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := s.validate(entity); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindDuplicate(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s duplicates: %w", s.entity, err)
	}
	if existing != nil {
		return nil, &domain.DuplicateEntityError{Entity: s.entity}
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.entity, err)
	}

	s.logger.InfoContext(ctx, "entity created")
	return entity, nil
}

// Update applies changes to a live entity
func (s *EntityService[T]) Update(ctx context.Context, id int64, changes domain.Changes) (*T, error) {
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.entity, err)
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Entity: s.entity, ID: id, Op: domain.OpUpdate}
	}

	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "entity updated",
		slog.Int64("id", id),
		slog.Int("fields", len(changes)))
	return updated, nil
}

// Delete soft deletes a live entity
func (s *EntityService[T]) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.entity, err)
	}
	if !deleted {
		return &domain.NotFoundError{Entity: s.entity, ID: id, Op: domain.OpDelete}
	}

	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "entity deleted", slog.Int64("id", id))
	return nil
}

func (s *EntityService[T]) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CacheKey(s.entity, id)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate cache",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
	}
}
