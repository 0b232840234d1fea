package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles identity and account HTTP requests.
type UserHandler struct {
	service      service.UserService
	defaultLimit int
	logger       zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, defaultLimit int, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:      service,
		defaultLimit: defaultLimit,
		logger:       logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/users/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/users/login requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/users/profile requests.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	user, err := h.service.Profile(r.Context(), requester.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile requests.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized", h.logger)
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), requester.UserID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/users requests (admin).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, h.defaultLimit)

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/users/{id} requests (admin).
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrUserNotFound.Message, h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id} requests (admin).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrUserNotFound.Message, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}
