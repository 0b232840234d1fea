package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes the {message} error envelope with the given status.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Message: message})
}

// writeDomainError maps a service error to an HTTP status and writes the
// error envelope. Duplicate reviews and other conflicts answer 400, matching
// the storefront's established API contract rather than 409.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeValidation, model.ErrCodeConflict, model.ErrCodeInvalidJSON:
		status = http.StatusBadRequest
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	}

	writeError(w, status, domainErr.Message, logger)
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// pageParams extracts pageNumber and limit query parameters. A missing or
// unparsable pageNumber defaults to 1. A missing limit falls back to
// defaultLimit; an explicit limit of zero or less requests a single
// unbounded page.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	if v := r.URL.Query().Get("pageNumber"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	return page, limit
}
