package handler

import (
	"net/http"

	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BespokeHandler handles tailoring consultation HTTP requests.
type BespokeHandler struct {
	service service.BespokeService
	logger  zerolog.Logger
}

// NewBespokeHandler creates a new bespoke handler.
func NewBespokeHandler(service service.BespokeService, logger zerolog.Logger) *BespokeHandler {
	return &BespokeHandler{
		service: service,
		logger:  logger.With().Str("handler", "bespoke").Logger(),
	}
}

// Create handles POST /api/bespoke requests.
func (h *BespokeHandler) Create(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)

	var req model.BespokeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	// Customers always file bespoke requests as themselves.
	if c.ID != "" && c.Role != model.RoleAdmin {
		req.UserID = c.ID
		req.UserName = c.Name
	}
	if req.UserID == "" {
		req.UserID = c.ID
	}
	if req.UserName == "" {
		req.UserName = c.Name
	}
	if req.UserID == "" || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "userId and productId are required", h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// List handles GET /api/bespoke requests. Admins see everything; customers
// see their own requests.
func (h *BespokeHandler) List(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)

	if c.Role == model.RoleAdmin {
		requests, err := h.service.ListAll(r.Context())
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, requests)
		return
	}

	if c.ID == "" {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity required", h.logger)
		return
	}

	requests, err := h.service.ListByUser(r.Context(), c.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// Advance handles POST /api/bespoke/{id}/status requests (admin).
func (h *BespokeHandler) Advance(w http.ResponseWriter, r *http.Request, idStr string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request ID format", h.logger)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	status, err := model.ParseBespokeStatus(req.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.Advance(r.Context(), id, status, c.ID, c.Name); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
