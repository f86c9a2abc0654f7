// internal/adapters/db/filters_test.go
package db

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFilterMap_Apply(t *testing.T) {
	tests := []struct {
		name     string
		filters  FilterMap
		filter   domain.ListFilter
		wantSQL  string
		wantArgs []interface{}
		wantErr  bool
	}{
		{
			name:    "empty_filter",
			filters: warehouseTable.filters,
			filter:  domain.ListFilter{},
			wantSQL: "SELECT id FROM warehouse",
		},
		{
			name:     "search_is_case_insensitive_substring",
			filters:  warehouseTable.filters,
			filter:   domain.ListFilter{Search: "Router"},
			wantSQL:  "SELECT id FROM warehouse WHERE name ILIKE $1",
			wantArgs: []interface{}{"%Router%"},
		},
		{
			name:     "search_escapes_wildcards",
			filters:  warehouseTable.filters,
			filter:   domain.ListFilter{Search: "50%_off"},
			wantSQL:  "SELECT id FROM warehouse WHERE name ILIKE $1",
			wantArgs: []interface{}{`%50\%\_off%`},
		},
		{
			name:     "ids",
			filters:  warehouseTable.filters,
			filter:   domain.ListFilter{IDs: []int64{3, 7}},
			wantSQL:  "SELECT id FROM warehouse WHERE id IN ($1,$2)",
			wantArgs: []interface{}{int64(3), int64(7)},
		},
		{
			name:     "text_field",
			filters:  warehouseTable.filters,
			filter:   domain.ListFilter{Fields: map[string]string{"article": "A-1"}},
			wantSQL:  "SELECT id FROM warehouse WHERE article = $1",
			wantArgs: []interface{}{"A-1"},
		},
		{
			name:     "int_field",
			filters:  warehouseTable.filters,
			filter:   domain.ListFilter{Fields: map[string]string{"supplier_id": "12"}},
			wantSQL:  "SELECT id FROM warehouse WHERE supplier_id = $1",
			wantArgs: []interface{}{int64(12)},
		},
		{
			name:    "int_field_rejects_text",
			filters: warehouseTable.filters,
			filter:  domain.ListFilter{Fields: map[string]string{"supplier_id": "twelve"}},
			wantErr: true,
		},
		{
			name:     "status_by_code",
			filters:  serialNumberTable.filters,
			filter:   domain.ListFilter{Fields: map[string]string{"status": "SOLD"}},
			wantSQL:  "SELECT id FROM warehouse WHERE status = $1",
			wantArgs: []interface{}{string(domain.StatusSold)},
		},
		{
			name:    "status_unknown",
			filters: serialNumberTable.filters,
			filter:  domain.ListFilter{Fields: map[string]string{"status": "LOST"}},
			wantErr: true,
		},
		{
			name:    "unknown_and_blank_fields_ignored",
			filters: contactFilters,
			filter:  domain.ListFilter{Fields: map[string]string{"color": "red", "country": ""}},
			wantSQL: "SELECT id FROM warehouse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.filters.Apply(psql.Select("id").From("warehouse"), tt.filter, quietLogger())
			if tt.wantErr {
				require.Error(t, err)
				var vErr *domain.ValidationError
				assert.True(t, errors.As(err, &vErr))
				return
			}
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestBaseRepository_UpdateRejectsUnknownColumn(t *testing.T) {
	repo := newBaseRepository[domain.Supplier](nil, supplierTable, quietLogger())

	_, err := repo.update(1, map[string]any{"created_at": "now"})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "created_at", vErr.Field)
}

func TestBaseRepository_UpdateSQL(t *testing.T) {
	repo := newBaseRepository[domain.Warehouse](nil, warehouseTable, quietLogger())

	q, err := repo.update(9, map[string]any{"product_count_in_stock": 4})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE warehouse SET product_count_in_stock = $1, updated_at = now() WHERE id = $2", sql)
	assert.Equal(t, []interface{}{4, int64(9)}, args)
}

func TestTableSpec_SelectColumns(t *testing.T) {
	cols := supplierTable.selectColumns()

	assert.Equal(t, "id", cols[0])
	assert.Equal(t, []string{"created_at", "updated_at", "deleted_at"}, cols[len(cols)-3:])
	assert.True(t, supplierTable.writable("email"))
	assert.False(t, supplierTable.writable("id"))
}
