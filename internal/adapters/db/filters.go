// internal/adapters/db/filters.go
package db

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// PredicateBuilder turns a raw query parameter into a SQL predicate
type PredicateBuilder func(column, raw string) (squirrel.Sqlizer, error)

// FieldFilter binds a query parameter to a column and its predicate
type FieldFilter struct {
	Column string
	Build  PredicateBuilder
}

// FilterMap is the declarative table of filterable fields of one entity.
// Fields absent from the map are ignored.
type FilterMap map[string]FieldFilter

// Apply adds the search, id and field predicates of filter to q
func (m FilterMap) Apply(q squirrel.SelectBuilder, filter domain.ListFilter, logger *slog.Logger) (squirrel.SelectBuilder, error) {
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + escapeLike(filter.Search) + "%"})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	for field, raw := range filter.Fields {
		if raw == "" {
			continue
		}
		ff, ok := m[field]
		if !ok {
			logger.Warn("ignoring unknown filter field", slog.String("field", field))
			continue
		}
		pred, err := ff.Build(ff.Column, raw)
		if err != nil {
			return q, err
		}
		q = q.Where(pred)
	}
	return q, nil
}

func eqText(column, raw string) (squirrel.Sqlizer, error) {
	return squirrel.Eq{column: raw}, nil
}

func eqInt(column, raw string) (squirrel.Sqlizer, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: column, Message: fmt.Sprintf("must be an integer, got %q", raw)}
	}
	return squirrel.Eq{column: v}, nil
}

func eqStatus(column, raw string) (squirrel.Sqlizer, error) {
	st, ok := domain.ParseSerialStatus(raw)
	if !ok {
		return nil, &domain.ValidationError{Field: column, Message: fmt.Sprintf("unknown status %q", raw)}
	}
	return squirrel.Eq{column: string(st)}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
