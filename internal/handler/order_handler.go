package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), requester.UserID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrOrderNotFound.Message, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID, requester)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Pay handles PUT /api/orders/{id}/pay requests.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrOrderNotFound.Message, h.logger)
		return
	}

	var result model.PaymentResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Pay(r.Context(), orderID, result)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Deliver handles PUT /api/orders/{id}/deliver requests.
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrOrderNotFound.Message, h.logger)
		return
	}

	order, err := h.service.Deliver(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListMine handles GET /api/orders/myorders requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), requester.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /api/orders requests for the admin dashboard.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
