// internal/adapters/storage/storage_test.go
package storage_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/test/helpers"
)

func TestUploadKey(t *testing.T) {
	at := time.Date(2024, 2, 9, 23, 30, 0, 0, time.UTC)
	key := storage.UploadKey(at)

	assert.Regexp(t, regexp.MustCompile(`^uploads/2024/02/09/[0-9a-f-]{36}\.xlsx$`), key)
	assert.NotEqual(t, key, storage.UploadKey(at))

	day, ok := storage.UploadDate(key)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), day)
}

func TestUploadDate_Invalid(t *testing.T) {
	for _, key := range []string{"", "uploads/", "uploads/2024/13/01/x.xlsx", "exports/2024/01/01/x.xlsx"} {
		_, ok := storage.UploadDate(key)
		assert.False(t, ok, key)
	}
}

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	_, err := store.Upload(ctx, "uploads/2024/01/01/a.xlsx", bytes.NewReader([]byte("first")), storage.XLSXContentType)
	require.NoError(t, err)
	_, err = store.Upload(ctx, "uploads/2024/01/02/b.xlsx", bytes.NewReader([]byte("second")), "")
	require.NoError(t, err)
	_, err = store.Upload(ctx, "other/c.txt", bytes.NewReader([]byte("third")), "")
	require.NoError(t, err)

	data, err := store.Download(ctx, "uploads/2024/01/01/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	keys, err := store.List(ctx, storage.UploadPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/2024/01/01/a.xlsx", "uploads/2024/01/02/b.xlsx"}, keys)

	ok, err := store.Exists(ctx, "uploads/2024/01/01/a.xlsx")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "uploads/2024/01/01/a.xlsx"))
	require.NoError(t, store.Delete(ctx, "uploads/2024/01/01/a.xlsx"))

	ok, err = store.Exists(ctx, "uploads/2024/01/01/a.xlsx")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Download(ctx, "uploads/2024/01/01/a.xlsx")
	assert.Error(t, err)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store := storage.NewLocalStorage(base, helpers.TestLogger())

	path, err := store.Upload(ctx, "../../escape.xlsx", bytes.NewReader([]byte("x")), "")
	require.NoError(t, err)
	assert.Contains(t, path, base)

	keys, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"escape.xlsx"}, keys)
}
