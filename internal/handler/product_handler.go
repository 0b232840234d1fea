package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service      service.ProductService
	defaultLimit int
	logger       zerolog.Logger
}

// NewProductHandler creates a new product handler. defaultLimit is the page
// size used when the caller does not supply one.
func NewProductHandler(service service.ProductService, defaultLimit int, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:      service,
		defaultLimit: defaultLimit,
		logger:       logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with keyword/category filtering.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		Keyword: r.URL.Query().Get("keyword"),
	}

	if v := r.URL.Query().Get("category"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category id", h.logger)
			return
		}
		filter.CategoryID = &categoryID
	}

	page, limit := pageParams(r, h.defaultLimit)

	result, err := h.service.List(r.Context(), filter, page, limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
