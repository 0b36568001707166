package handler

import (
	"net/http"
	"strconv"
	"strings"

	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.ProductService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, audit service.AuditService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		audit:   audit,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with search and pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  20,
		Offset: 0,
	}

	if cat := r.URL.Query().Get("category"); cat != "" {
		category := model.Category(cat)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "unknown category", h.logger)
			return
		}
		filter.Category = category
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
		filter.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
			return
		}
		filter.Offset = offset
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var p model.Product
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &p); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "product.create", c, map[string]any{"productId": p.ID, "name": p.Name})
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/products/{id} requests (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var p model.Product
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	p.ID = id

	if err := h.service.Update(r.Context(), &p); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "product.update", c, map[string]any{"productId": id})
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/products/{id} requests (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "product.delete", c, map[string]any{"productId": id})
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock handles POST /api/products/{id}/stock requests (admin).
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request, id string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.AdjustStock(r.Context(), id, req.Delta); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "product.stock_adjust", c, map[string]any{"productId": id, "delta": req.Delta})
	w.WriteHeader(http.StatusNoContent)
}

// ListReviews handles GET /api/products/{id}/reviews requests.
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request, id string) {
	reviews, err := h.service.ListReviews(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// AddReview handles POST /api/products/{id}/reviews requests.
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request, id string) {
	c := callerFrom(r)

	var review model.Review
	if err := decode(r, &review); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	review.ProductID = id
	if review.UserName == "" {
		review.UserName = c.Name
	}
	if strings.TrimSpace(review.Comment) == "" || review.Rating < 1 || review.Rating > 5 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "rating must be 1-5 and comment is required", h.logger)
		return
	}

	if err := h.service.AddReview(r.Context(), &review); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ProductHandler) recordAudit(r *http.Request, event string, c caller, metadata map[string]any) {
	if err := h.audit.Record(r.Context(), event, c.ID, c.Name, metadata); err != nil {
		h.logger.Warn().Err(err).Str("event", event).Msg("failed to record audit entry")
	}
}
