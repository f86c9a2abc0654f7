// internal/handlers/entity.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// Patch is a partial update body. Validate checks the present fields and
// Changes returns them keyed by column.
type Patch interface {
	Validate() error
	Changes() domain.Changes
}

// Query filters accepted by each listing
var (
	ContactFilterFields      = []string{"country", "email"}
	WarehouseFilterFields    = []string{"article", "supplier_id", "manufacturer_id"}
	SerialNumberFilterFields = []string{"warehouse_id", "status", "order_id"}
)

// EntityHandler serves the CRUD endpoints of one entity
type EntityHandler[T any] struct {
	responder
	entity   string
	service  ports.EntityService[T]
	newPatch func() Patch
	filters  []string
}

// NewEntityHandler creates a CRUD handler. newPatch returns an empty
// patch body for PATCH requests.
func NewEntityHandler[T any](
	entity string,
	service ports.EntityService[T],
	newPatch func() Patch,
	filters []string,
	logger *slog.Logger,
) *EntityHandler[T] {
	return &EntityHandler[T]{
		responder: responder{logger: logger.With(slog.String("handler", entity))},
		entity:    entity,
		service:   service,
		newPatch:  newPatch,
		filters:   filters,
	}
}

// NewManufacturerHandler serves /v1/manufacturer/
func NewManufacturerHandler(service ports.EntityService[domain.Manufacturer], logger *slog.Logger) *EntityHandler[domain.Manufacturer] {
	return NewEntityHandler(domain.EntityManufacturer, service,
		func() Patch { return &domain.ContactPatch{} }, ContactFilterFields, logger)
}

// NewSupplierHandler serves /v1/supplier/
func NewSupplierHandler(service ports.EntityService[domain.Supplier], logger *slog.Logger) *EntityHandler[domain.Supplier] {
	return NewEntityHandler(domain.EntitySupplier, service,
		func() Patch { return &domain.ContactPatch{} }, ContactFilterFields, logger)
}

// NewSerialNumberHandler serves /v1/serial_number/
func NewSerialNumberHandler(service ports.EntityService[domain.SerialNumber], logger *slog.Logger) *EntityHandler[domain.SerialNumber] {
	return NewEntityHandler(domain.EntitySerialNumber, service,
		func() Patch { return &domain.SerialNumberPatch{} }, SerialNumberFilterFields, logger)
}

// Register mounts the handler under /v1/{entity}/. wrap is applied to
// every route, typically an auth middleware.
func (h *EntityHandler[T]) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET "+h.basePath()+"{$}", wrap(http.HandlerFunc(h.List)))
	h.registerWrites(mux, wrap)
}

func (h *EntityHandler[T]) basePath() string {
	return "/v1/" + h.entity + "/"
}

// registerWrites mounts every route except the listing
func (h *EntityHandler[T]) registerWrites(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	base := h.basePath()
	item := base + "{id}/{$}"

	mux.Handle("POST "+base+"{$}", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET "+item, wrap(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH "+item, wrap(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE "+item, wrap(http.HandlerFunc(h.Delete)))
}

// List handles GET /v1/{entity}/
func (h *EntityHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r, h.filters)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []*T{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

// Get handles GET /v1/{entity}/{id}/
func (h *EntityHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

// Create handles POST /v1/{entity}/
func (h *EntityHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var entity T
	if !h.decodeJSON(w, r, &entity) {
		return
	}

	created, err := h.service.Create(r.Context(), &entity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "entity created", slog.String("entity", h.entity))
	h.respondJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /v1/{entity}/{id}/
func (h *EntityHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	patch := h.newPatch()
	if !h.decodeJSON(w, r, patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch.Changes())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/{entity}/{id}/
func (h *EntityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "entity deleted",
		slog.String("entity", h.entity),
		slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
