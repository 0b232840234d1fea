package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Create handles POST /api/reviews/{productId} requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	productID, err := pathUUID(r, "productId")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Create(r.Context(), productID, requester, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	// Acknowledgment only, the review body is not echoed back.
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Review added"})
}

// ListByProduct handles GET /api/reviews/{productId} requests.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
