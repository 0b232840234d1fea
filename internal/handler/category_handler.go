package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service      service.CategoryService
	defaultLimit int
	logger       zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, defaultLimit int, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:      service,
		defaultLimit: defaultLimit,
		logger:       logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, h.defaultLimit)

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/categories/{id} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrCategoryNotFound.Message, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories requests (admin).
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{id} requests (admin).
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrCategoryNotFound.Message, h.logger)
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id} requests (admin).
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrCategoryNotFound.Message, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
