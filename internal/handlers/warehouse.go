// internal/handlers/warehouse.go
package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	redis_a "github.com/ammerola/warehouse-ms/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-ms/internal/adapters/spreadsheet"
	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
)

// Upload form errors
const (
	MsgFileRequired   = "File is required"
	MsgOnlyXLSX       = "Only .xlsx files are allowed"
	MsgFileTooLarge   = "File is too large"
	MsgAlreadyQueued  = "This file is already queued for processing"
	MsgQueueNotActive = "Background processing is not configured"
)

// WarehouseDeps are the collaborators of WarehouseHandler. Queue, Storage
// and Cache may be nil; the async upload then answers 503 and the upload
// dedupe is skipped.
type WarehouseDeps struct {
	Service        ports.WarehouseService
	Ingest         ports.IngestService
	Queue          ports.IngestQueue
	Storage        ports.StorageClient
	Cache          ports.CacheRepository
	Reporter       ports.StockReporter
	MaxUploadBytes int64
	DedupeTTL      time.Duration
}

// WarehouseHandler serves the warehouse CRUD, the workbook uploads and the
// stock export.
type WarehouseHandler struct {
	*EntityHandler[domain.Warehouse]
	deps WarehouseDeps
	now  func() time.Time
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(deps WarehouseDeps, logger *slog.Logger) *WarehouseHandler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 10 << 20
	}
	if deps.DedupeTTL <= 0 {
		deps.DedupeTTL = 24 * time.Hour
	}
	return &WarehouseHandler{
		EntityHandler: NewEntityHandler[domain.Warehouse](domain.EntityWarehouse, deps.Service,
			func() Patch { return &domain.WarehousePatch{} }, WarehouseFilterFields, logger),
		deps: deps,
		now:  time.Now,
	}
}

// Register mounts the warehouse routes
func (h *WarehouseHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	base := h.basePath()

	mux.Handle("GET "+base+"{$}", wrap(http.HandlerFunc(h.List)))
	mux.Handle("POST "+base+"upload_excel_file/{$}", wrap(http.HandlerFunc(h.UploadExcel)))
	mux.Handle("POST "+base+"upload_excel_file/async/{$}", wrap(http.HandlerFunc(h.UploadExcelAsync)))
	mux.Handle("GET "+base+"upload_excel_file/{task_id}/{$}", wrap(http.HandlerFunc(h.UploadStatus)))
	mux.Handle("GET "+base+"export/{$}", wrap(http.HandlerFunc(h.Export)))
	h.registerWrites(mux, wrap)
}

// List handles GET /v1/warehouse/ and nests the live serial numbers of
// every warehouse.
func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r, h.filters)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	items, err := h.deps.Service.ListWithSerials(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.WarehouseWithSerials{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

// UploadExcel handles POST /v1/warehouse/upload_excel_file/. The workbook
// is ingested within the request.
func (h *WarehouseHandler) UploadExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, name, ok := h.readWorkbook(w, r)
	if !ok {
		return
	}

	report, err := h.deps.Ingest.Ingest(ctx, data)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "workbook ingested",
		slog.String("file", name),
		slog.Int("warehouses_created", report.WarehousesCreated),
		slog.Int("serial_numbers_created", report.SerialNumbersCreated))

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "File upload",
		"report": report,
	})
}

// UploadExcelAsync handles POST /v1/warehouse/upload_excel_file/async/.
// The workbook is archived and ingested by a background worker.
func (h *WarehouseHandler) UploadExcelAsync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.deps.Queue == nil || h.deps.Storage == nil {
		h.respondError(w, http.StatusServiceUnavailable, MsgQueueNotActive)
		return
	}

	data, name, ok := h.readWorkbook(w, r)
	if !ok {
		return
	}

	sum := sha256.Sum256(data)
	dedupeKey := redis_a.UploadDedupeKey(hex.EncodeToString(sum[:]))
	if h.deps.Cache != nil {
		fresh, err := h.deps.Cache.SetNX(ctx, dedupeKey, name, h.deps.DedupeTTL)
		switch {
		case err != nil:
			h.logger.WarnContext(ctx, "upload dedupe check failed", slog.String("error", err.Error()))
		case !fresh:
			h.respondError(w, http.StatusConflict, MsgAlreadyQueued)
			return
		}
	}

	now := h.now().UTC()
	key := storage.UploadKey(now)
	if _, err := h.deps.Storage.Upload(ctx, key, bytes.NewReader(data), storage.XLSXContentType); err != nil {
		h.releaseDedupe(r, dedupeKey)
		h.writeServiceError(w, r, fmt.Errorf("failed to archive upload: %w", err))
		return
	}

	job := domain.IngestJob{
		UploadKey:  key,
		FileName:   name,
		DedupeKey:  dedupeKey,
		UploadedBy: userFromContext(r),
		UploadedAt: now,
	}
	taskID, err := h.deps.Queue.EnqueueIngest(ctx, job)
	if err != nil {
		h.releaseDedupe(r, dedupeKey)
		if derr := h.deps.Storage.Delete(ctx, key); derr != nil {
			h.logger.WarnContext(ctx, "failed to remove archived upload",
				slog.String("key", key),
				slog.String("error", derr.Error()))
		}
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "workbook ingest queued",
		slog.String("task_id", taskID),
		slog.String("upload_key", key),
		slog.String("file", name))

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"task_id":    taskID,
		"upload_key": key,
	})
}

// UploadStatus handles GET /v1/warehouse/upload_excel_file/{task_id}/
func (h *WarehouseHandler) UploadStatus(w http.ResponseWriter, r *http.Request) {
	if h.deps.Queue == nil {
		h.respondError(w, http.StatusServiceUnavailable, MsgQueueNotActive)
		return
	}

	status, err := h.deps.Queue.IngestStatus(r.Context(), r.PathValue("task_id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, status)
}

// Export handles GET /v1/warehouse/export/ and streams the stock report
func (h *WarehouseHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	search := r.URL.Query().Get("search")
	if len([]rune(search)) > domain.MaxSearchLength {
		h.writeServiceError(w, r, &domain.ValidationError{
			Field:   "search",
			Message: fmt.Sprintf("must be at most %d characters", domain.MaxSearchLength),
		})
		return
	}

	rows, err := h.deps.Reporter.StockReport(ctx, search)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	data, err := spreadsheet.WriteStockReport(rows)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("stock_%s.xlsx", h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", storage.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export", slog.String("error", err.Error()))
	}
}

// readWorkbook reads the "file" form field and answers 400 for missing,
// oversized or non xlsx uploads.
func (h *WarehouseHandler) readWorkbook(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.deps.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.deps.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, MsgFileTooLarge)
			return nil, "", false
		}
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, MsgFileRequired)
		return nil, "", false
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.respondError(w, http.StatusBadRequest, MsgOnlyXLSX)
		return nil, "", false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read upload")
		return nil, "", false
	}
	return data, header.Filename, true
}

func (h *WarehouseHandler) releaseDedupe(r *http.Request, key string) {
	if h.deps.Cache == nil {
		return
	}
	if err := h.deps.Cache.Delete(r.Context(), key); err != nil {
		h.logger.WarnContext(r.Context(), "failed to release upload dedupe key",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func userFromContext(r *http.Request) string {
	if user, ok := r.Context().Value(logger.ContextKeyUserID).(string); ok {
		return user
	}
	return ""
}
