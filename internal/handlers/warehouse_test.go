// internal/handlers/warehouse_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/handlers"
	"github.com/ammerola/warehouse-ms/test/helpers"
	"github.com/ammerola/warehouse-ms/test/mocks"
)

type warehouseMocks struct {
	service  *mocks.MockWarehouseService
	ingest   *mocks.MockIngestService
	queue    *mocks.MockIngestQueue
	storage  *mocks.MockStorageClient
	cache    *mocks.MockCacheRepository
	reporter *mocks.MockStockReporter
}

func newWarehouseMux(t *testing.T, mutate ...func(*handlers.WarehouseDeps)) (*http.ServeMux, *warehouseMocks) {
	ctrl := gomock.NewController(t)
	m := &warehouseMocks{
		service:  mocks.NewMockWarehouseService(ctrl),
		ingest:   mocks.NewMockIngestService(ctrl),
		queue:    mocks.NewMockIngestQueue(ctrl),
		storage:  mocks.NewMockStorageClient(ctrl),
		cache:    mocks.NewMockCacheRepository(ctrl),
		reporter: mocks.NewMockStockReporter(ctrl),
	}
	deps := handlers.WarehouseDeps{
		Service:        m.service,
		Ingest:         m.ingest,
		Queue:          m.queue,
		Storage:        m.storage,
		Cache:          m.cache,
		Reporter:       m.reporter,
		MaxUploadBytes: 1 << 20,
	}
	for _, fn := range mutate {
		fn(&deps)
	}

	mux := http.NewServeMux()
	handlers.NewWarehouseHandler(deps, helpers.TestLogger()).Register(mux, passThrough)
	return mux, m
}

func uploadRequest(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestWarehouseHandler_List(t *testing.T) {
	mux, m := newWarehouseMux(t)
	wh := domain.WarehouseWithSerials{
		Warehouse:     *helpers.CreateTestWarehouse(func(w *domain.Warehouse) { w.ID = 4 }),
		SerialNumbers: []domain.SerialNumber{*helpers.CreateTestSerialNumber(4)},
	}
	m.service.EXPECT().
		ListWithSerials(gomock.Any(), domain.ListFilter{Fields: map[string]string{"supplier_id": "2"}}).
		Return([]*domain.WarehouseWithSerials{&wh}, nil)

	rec := serve(mux, http.MethodGet, "/v1/warehouse/?supplier_id=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.WarehouseWithSerials
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Len(t, got[0].SerialNumbers, 1)
}

func TestWarehouseHandler_RoutesDoNotShadowEachOther(t *testing.T) {
	mux, m := newWarehouseMux(t)
	m.service.EXPECT().Get(gomock.Any(), int64(12)).Return(helpers.CreateTestWarehouse(), nil)
	m.reporter.EXPECT().StockReport(gomock.Any(), "").Return(nil, nil)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/v1/warehouse/12/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/v1/warehouse/export/", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/v1/warehouse/12/extra/", nil).Code)
}

func TestWarehouseHandler_UploadExcel(t *testing.T) {
	workbook := helpers.BuildOrderWorkbook(t, domain.OrderSheetName, helpers.OrderLine{
		Name: "Router X", Article: "RX-1", Supplier: "Acme", Manufacturer: "Netgear",
		Warranty: "12", Quantity: "1", SerialNumber: "SN1", PriceInput: "10",
	})

	tests := []struct {
		name           string
		filename       string
		setupMocks     func(*warehouseMocks)
		expectedStatus int
		expectedError  string
	}{
		{
			name:     "ingested",
			filename: "order.xlsx",
			setupMocks: func(m *warehouseMocks) {
				m.ingest.EXPECT().Ingest(gomock.Any(), workbook).
					Return(&domain.IngestReport{Sheet: domain.OrderSheetName, WarehousesCreated: 1, SerialNumbersCreated: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_file",
			setupMocks:     func(*warehouseMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handlers.MsgFileRequired,
		},
		{
			name:           "wrong_extension",
			filename:       "order.csv",
			setupMocks:     func(*warehouseMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handlers.MsgOnlyXLSX,
		},
		{
			name:     "missing_supplier",
			filename: "order.xlsx",
			setupMocks: func(m *warehouseMocks) {
				m.ingest.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(nil, &domain.MissingSupplierError{Row: 2, Article: "RX-1"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  (&domain.MissingSupplierError{Row: 2, Article: "RX-1"}).Error(),
		},
		{
			name:     "database_failure",
			filename: "order.xlsx",
			setupMocks: func(m *warehouseMocks) {
				m.ingest.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  handlers.MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newWarehouseMux(t)
			tt.setupMocks(m)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/", tt.filename, workbook))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorDetail(t, rec))
				return
			}

			var body struct {
				Status string              `json:"status"`
				Report domain.IngestReport `json:"report"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "File upload", body.Status)
			assert.Equal(t, 1, body.Report.SerialNumbersCreated)
		})
	}
}

func TestWarehouseHandler_UploadExcel_TooLarge(t *testing.T) {
	mux, _ := newWarehouseMux(t, func(d *handlers.WarehouseDeps) { d.MaxUploadBytes = 64 })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/", "order.xlsx", bytes.Repeat([]byte("x"), 4096)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWarehouseHandler_UploadExcelAsync(t *testing.T) {
	data := []byte("workbook bytes")

	t.Run("queued", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		var uploadedKey, dedupeKey string
		gomock.InOrder(
			m.cache.EXPECT().SetNX(gomock.Any(), gomock.Any(), "order.xlsx", 24*time.Hour).
				DoAndReturn(func(_ any, key string, _ any, _ time.Duration) (bool, error) {
					dedupeKey = key
					return true, nil
				}),
			m.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), storage.XLSXContentType).
				DoAndReturn(func(_ any, key string, _ any, _ string) (string, error) {
					uploadedKey = key
					return key, nil
				}),
			m.queue.EXPECT().EnqueueIngest(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, job domain.IngestJob) (string, error) {
					assert.Equal(t, uploadedKey, job.UploadKey)
					assert.Equal(t, "order.xlsx", job.FileName)
					// the worker releases the key once the task finishes
					assert.Equal(t, dedupeKey, job.DedupeKey)
					assert.True(t, strings.HasPrefix(job.DedupeKey, "upload:"))
					return "task-1", nil
				}),
		)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/async/", "order.xlsx", data))

		require.Equal(t, http.StatusAccepted, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "task-1", body["task_id"])
		assert.Equal(t, uploadedKey, body["upload_key"])
		assert.Contains(t, uploadedKey, storage.UploadPrefix)
	})

	t.Run("duplicate_upload", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		m.cache.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/async/", "order.xlsx", data))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, handlers.MsgAlreadyQueued, errorDetail(t, rec))
	})

	t.Run("enqueue_failure_rolls_back", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		m.cache.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("path", nil)
		m.queue.EXPECT().EnqueueIngest(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
		m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		m.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/async/", "order.xlsx", data))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("dedupe_cache_unavailable", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		m.cache.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("timeout"))
		m.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("path", nil)
		m.queue.EXPECT().EnqueueIngest(gomock.Any(), gomock.Any()).Return("task-2", nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/async/", "order.xlsx", data))

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("queue_not_configured", func(t *testing.T) {
		mux, _ := newWarehouseMux(t, func(d *handlers.WarehouseDeps) { d.Queue = nil })

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, uploadRequest(t, "/v1/warehouse/upload_excel_file/async/", "order.xlsx", data))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestWarehouseHandler_UploadStatus(t *testing.T) {
	t.Run("known_task", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		m.queue.EXPECT().IngestStatus(gomock.Any(), "task-1").
			Return(&domain.IngestJobStatus{TaskID: "task-1", State: "completed"}, nil)

		rec := serve(mux, http.MethodGet, "/v1/warehouse/upload_excel_file/task-1/", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.IngestJobStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "completed", got.State)
	})

	t.Run("unknown_task", func(t *testing.T) {
		mux, m := newWarehouseMux(t)
		m.queue.EXPECT().IngestStatus(gomock.Any(), "nope").Return(nil, domain.ErrJobNotFound)

		rec := serve(mux, http.MethodGet, "/v1/warehouse/upload_excel_file/nope/", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWarehouseHandler_Export(t *testing.T) {
	mux, m := newWarehouseMux(t)
	m.reporter.EXPECT().StockReport(gomock.Any(), "router").Return([]domain.StockReportRow{
		{WarehouseID: 4, Article: "RX-1", Name: "Router X", Supplier: "Acme", Manufacturer: "Netgear", ProductCountInStock: 2, LiveSerialNumbers: 2},
	}, nil)

	rec := serve(mux, http.MethodGet, "/v1/warehouse/export/?search=router", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, storage.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"stock_")

	file, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Equal(t, 2, file.Sheets[0].MaxRow)
}

func TestWarehouseHandler_ExportRejectsLongSearch(t *testing.T) {
	mux, _ := newWarehouseMux(t)

	rec := serve(mux, http.MethodGet, "/v1/warehouse/export/?search="+string(bytes.Repeat([]byte("a"), domain.MaxSearchLength+1)), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
