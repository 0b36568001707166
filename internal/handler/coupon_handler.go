package handler

import (
	"net/http"
	"strings"

	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles discount code HTTP requests.
type CouponHandler struct {
	service service.CouponService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, audit service.AuditService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		audit:   audit,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Apply handles POST /api/coupons/apply requests. Rejections carry the
// specific reason so the storefront can show it.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "coupon code is required", h.logger)
		return
	}

	coupon, discount, err := h.service.Apply(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"coupon":   coupon,
		"discount": discount,
	})
}

// List handles GET /api/coupons requests (admin).
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	if callerFrom(r).Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	coupons, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// Create handles POST /api/coupons requests (admin).
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var coupon model.Coupon
	if err := decode(r, &coupon); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &coupon); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "coupon.create", c, map[string]any{"code": coupon.Code})
	writeJSON(w, http.StatusCreated, coupon)
}

// Update handles PUT /api/coupons/{id} requests (admin).
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request, idStr string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid coupon ID format", h.logger)
		return
	}

	var coupon model.Coupon
	if err := decode(r, &coupon); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	coupon.ID = id

	if err := h.service.Update(r.Context(), &coupon); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "coupon.update", c, map[string]any{"code": coupon.Code})
	writeJSON(w, http.StatusOK, coupon)
}

// Delete handles DELETE /api/coupons/{id} requests (admin).
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request, idStr string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid coupon ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "coupon.delete", c, map[string]any{"couponId": idStr})
	w.WriteHeader(http.StatusNoContent)
}

func (h *CouponHandler) recordAudit(r *http.Request, event string, c caller, metadata map[string]any) {
	if err := h.audit.Record(r.Context(), event, c.ID, c.Name, metadata); err != nil {
		h.logger.Warn().Err(err).Str("event", event).Msg("failed to record audit entry")
	}
}
