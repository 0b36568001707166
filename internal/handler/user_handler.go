package handler

import (
	"net/http"

	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account record HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// List handles GET /api/users requests (admin).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if callerFrom(r).Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	users, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetMe handles GET /api/users/me requests.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.ID == "" {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity required", h.logger)
		return
	}

	u, err := h.service.GetByID(r.Context(), c.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// UpsertMe handles PUT /api/users/me requests. The caller can only write
// their own profile; role and creation time are never taken from the body.
func (h *UserHandler) UpsertMe(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.ID == "" {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity required", h.logger)
		return
	}

	var u model.User
	if err := decode(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	u.ID = c.ID
	if u.Name == "" {
		u.Name = c.Name
	}

	if err := h.service.Upsert(r.Context(), &u); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// SetRole handles PUT /api/users/{id}/role requests (admin).
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request, id string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var body struct {
		Role model.Role `json:"role"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.SetRole(r.Context(), id, body.Role, c.ID, c.Name); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
