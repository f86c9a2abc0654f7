// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
)

// MsgInternal is the only detail a client sees for unexpected failures
const MsgInternal = "Internal server error"

// responder writes JSON responses and maps service errors to statuses
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// writeServiceError answers with the status that matches err. Domain
// errors carry their message to the client; anything else is logged and
// answered with a generic 500.
func (h responder) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		duplicate  *domain.DuplicateEntityError
		notFound   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		h.respondError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &duplicate):
		h.respondError(w, http.StatusBadRequest, duplicate.Error())
	case errors.As(err, &notFound):
		status := http.StatusBadRequest
		if notFound.Op == domain.OpGet {
			status = http.StatusNotFound
		}
		h.respondError(w, status, notFound.Error())
	case domain.IsIngestError(err):
		h.logger.WarnContext(r.Context(), "workbook rejected", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrJobNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, MsgInternal)
	}
}

func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID reads the {id} path value
func (h responder) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseListFilter reads search, repeated need_id and the given equality
// filters from the query string.
func parseListFilter(r *http.Request, fields []string) (domain.ListFilter, error) {
	q := r.URL.Query()
	filter := domain.ListFilter{Search: q.Get("search")}

	for _, raw := range q["need_id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, &domain.ValidationError{Field: "need_id", Message: "must contain integer ids"}
		}
		filter.IDs = append(filter.IDs, id)
	}

	for _, f := range fields {
		if v := q.Get(f); v != "" {
			if filter.Fields == nil {
				filter.Fields = make(map[string]string)
			}
			filter.Fields[f] = v
		}
	}
	return filter, nil
}
