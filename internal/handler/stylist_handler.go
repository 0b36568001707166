package handler

import (
	"net/http"
	"strings"

	"anandam/internal/model"
	"anandam/internal/stylist"

	"github.com/rs/zerolog"
)

// StylistHandler handles AI styling HTTP requests.
type StylistHandler struct {
	service *stylist.Service
	logger  zerolog.Logger
}

// NewStylistHandler creates a new stylist handler.
func NewStylistHandler(service *stylist.Service, logger zerolog.Logger) *StylistHandler {
	return &StylistHandler{
		service: service,
		logger:  logger.With().Str("handler", "stylist").Logger(),
	}
}

// Advice handles POST /api/stylist/advice requests. Always returns 200 with
// at least the fallback copy.
func (h *StylistHandler) Advice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string `json:"productName"`
		Description string `json:"description"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.ProductName) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productName is required", h.logger)
		return
	}

	advice := h.service.FashionAdvice(r.Context(), req.ProductName, req.Description)
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

// Describe handles POST /api/stylist/describe requests (admin tooling for
// drafting product copy).
func (h *StylistHandler) Describe(w http.ResponseWriter, r *http.Request) {
	if callerFrom(r).Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "name is required", h.logger)
		return
	}

	description := h.service.ProductDescription(r.Context(), req.Name, req.Category)
	writeJSON(w, http.StatusOK, map[string]string{"description": description})
}
