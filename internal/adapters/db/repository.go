// internal/adapters/db/repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// tableSpec describes how an entity maps onto its table. columns lists
// the writable columns; values and scan follow the same order, scan
// reading id first and the timestamps last.
type tableSpec[T any] struct {
	entity   string
	table    string
	columns  []string
	values   func(*T) []any
	base     func(*T) *domain.Base
	scan     func(pgx.Row) (*T, error)
	identity func(*T) squirrel.Eq
	filters  FilterMap
}

func (s *tableSpec[T]) selectColumns() []string {
	cols := make([]string, 0, len(s.columns)+4)
	cols = append(cols, "id")
	cols = append(cols, s.columns...)
	return append(cols, "created_at", "updated_at", "deleted_at")
}

func (s *tableSpec[T]) writable(column string) bool {
	for _, c := range s.columns {
		if c == column {
			return true
		}
	}
	return false
}

// baseRepository implements ports.Repository[T] for any tableSpec
type baseRepository[T any] struct {
	q      Querier
	spec   *tableSpec[T]
	logger *slog.Logger
}

func newBaseRepository[T any](q Querier, spec *tableSpec[T], logger *slog.Logger) *baseRepository[T] {
	return &baseRepository[T]{
		q:      q,
		spec:   spec,
		logger: logger.With(slog.String("repository", spec.entity)),
	}
}

func (r *baseRepository[T]) live() squirrel.SelectBuilder {
	return psql.Select(r.spec.selectColumns()...).
		From(r.spec.table).
		Where("deleted_at IS NULL")
}

func (r *baseRepository[T]) queryMany(ctx context.Context, q squirrel.SelectBuilder) ([]*T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", r.spec.table, err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.spec.table, err)
	}
	return ScanMany(rows, r.spec.scan)
}

func (r *baseRepository[T]) queryOne(ctx context.Context, q squirrel.Sqlizer) (*T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", r.spec.table, err)
	}
	entity, err := ScanOne(r.q.QueryRow(ctx, query, args...), r.spec.scan)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.spec.table, err)
	}
	return entity, nil
}

// GetOne returns the live row with id, or nil, nil
func (r *baseRepository[T]) GetOne(ctx context.Context, id int64) (*T, error) {
	return r.queryOne(ctx, r.live().Where(squirrel.Eq{"id": id}))
}

// List returns live rows matching filter ordered by id
func (r *baseRepository[T]) List(ctx context.Context, filter domain.ListFilter) ([]*T, error) {
	q, err := r.spec.filters.Apply(r.live(), filter, r.logger)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, q.OrderBy("id"))
}

// FindDuplicate returns a live row with the same identity as entity
func (r *baseRepository[T]) FindDuplicate(ctx context.Context, entity *T) (*T, error) {
	return r.queryOne(ctx, r.live().Where(r.spec.identity(entity)).OrderBy("id").Limit(1))
}

// Create inserts entity and fills its id and timestamps
func (r *baseRepository[T]) Create(ctx context.Context, entity *T) error {
	query, args, err := r.insert(entity).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", r.spec.table, err)
	}

	b := r.spec.base(entity)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert %s: %w", r.spec.table, err)
	}

	r.logger.DebugContext(ctx, "row inserted", slog.Int64("id", b.ID))
	return nil
}

func (r *baseRepository[T]) insert(entity *T) squirrel.InsertBuilder {
	return psql.Insert(r.spec.table).
		Columns(r.spec.columns...).
		Values(r.spec.values(entity)...).
		Suffix("RETURNING id, created_at, updated_at")
}

// Update applies changes to the live row with id and returns it, or nil
// when no live row matched.
func (r *baseRepository[T]) Update(ctx context.Context, id int64, changes domain.Changes) (*T, error) {
	q, err := r.update(id, changes)
	if err != nil {
		return nil, err
	}
	return r.queryOne(ctx, q.Where("deleted_at IS NULL").Suffix("RETURNING "+strings.Join(r.spec.selectColumns(), ", ")))
}

func (r *baseRepository[T]) update(id int64, changes map[string]any) (squirrel.UpdateBuilder, error) {
	for column := range changes {
		if !r.spec.writable(column) {
			return squirrel.UpdateBuilder{}, &domain.ValidationError{Field: column, Message: "cannot be updated"}
		}
	}
	return psql.Update(r.spec.table).
		SetMap(changes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}), nil
}

// SoftDelete marks the live row with id as deleted
func (r *baseRepository[T]) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		r.spec.table)

	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete %s: %w", r.spec.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// BulkInsert inserts all entities in one round trip and fills their ids.
// Any failure is reported as *domain.BulkWriteError.
func (r *baseRepository[T]) BulkInsert(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entities {
		query, args, err := r.insert(e).ToSql()
		if err != nil {
			return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
		}
		batch.Queue(query, args...)
	}

	br := r.q.SendBatch(ctx, batch)
	for _, e := range entities {
		b := r.spec.base(e)
		if err := br.QueryRow().Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			_ = br.Close()
			return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
		}
	}
	if err := br.Close(); err != nil {
		return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
	}

	r.logger.DebugContext(ctx, "bulk insert completed", slog.Int("rows", len(entities)))
	return nil
}

// BulkUpdate applies every row update in one round trip. Any failure is
// reported as *domain.BulkWriteError.
func (r *baseRepository[T]) BulkUpdate(ctx context.Context, updates []domain.RowUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		q, err := r.update(u.ID, u.Changes)
		if err != nil {
			return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
		}
		query, args, err := q.ToSql()
		if err != nil {
			return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
		}
		batch.Queue(query, args...)
	}

	br := r.q.SendBatch(ctx, batch)
	for range updates {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
		}
	}
	if err := br.Close(); err != nil {
		return &domain.BulkWriteError{Table: r.spec.entity, Err: err}
	}

	r.logger.DebugContext(ctx, "bulk update completed", slog.Int("rows", len(updates)))
	return nil
}
