package handler

import (
	"net/http"
	"strconv"

	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles back-office HTTP requests: payment settings,
// marketing content and the audit trail.
type AdminHandler struct {
	settings  service.SettingsService
	marketing service.MarketingService
	audit     service.AuditService
	logger    zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	settings service.SettingsService,
	marketing service.MarketingService,
	audit service.AuditService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		settings:  settings,
		marketing: marketing,
		audit:     audit,
		logger:    logger.With().Str("handler", "admin").Logger(),
	}
}

// GetSettings handles GET /api/settings/payment requests. Readable by the
// storefront so checkout can show fees before placing an order.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings/payment requests (admin).
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var settings model.PaymentSettings
	if err := decode(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.settings.Update(r.Context(), settings, c.ID, c.Name); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// ListCampaigns handles GET /api/campaigns requests.
func (h *AdminHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.marketing.ListCampaigns(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// SaveCampaign handles POST /api/campaigns requests (admin). Creates or
// replaces by ID.
func (h *AdminHandler) SaveCampaign(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var campaign model.Campaign
	if err := decode(r, &campaign); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.marketing.SaveCampaign(r.Context(), &campaign); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "campaign.save", c, map[string]any{"campaignId": campaign.ID.String(), "title": campaign.Title})
	writeJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /api/campaigns/{id} requests (admin).
func (h *AdminHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request, idStr string) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid campaign ID format", h.logger)
		return
	}

	if err := h.marketing.DeleteCampaign(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "campaign.delete", c, map[string]any{"campaignId": idStr})
	w.WriteHeader(http.StatusNoContent)
}

// GetGiftCard handles GET /api/giftcards/{code} requests.
func (h *AdminHandler) GetGiftCard(w http.ResponseWriter, r *http.Request, code string) {
	card, err := h.marketing.GetGiftCard(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if card == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeCouponNotFound, "gift card not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// SaveGiftCard handles POST /api/giftcards requests (admin).
func (h *AdminHandler) SaveGiftCard(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)
	if c.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	var card model.GiftCard
	if err := decode(r, &card); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.marketing.SaveGiftCard(r.Context(), &card); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.recordAudit(r, "giftcard.save", c, map[string]any{"code": card.Code})
	writeJSON(w, http.StatusOK, card)
}

// ListAudit handles GET /api/audit requests (admin).
func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	if callerFrom(r).Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required", h.logger)
		return
	}

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
		limit = parsed
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
			return
		}
		offset = parsed
	}

	entries, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AdminHandler) recordAudit(r *http.Request, event string, c caller, metadata map[string]any) {
	if err := h.audit.Record(r.Context(), event, c.ID, c.Name, metadata); err != nil {
		h.logger.Warn().Err(err).Str("event", event).Msg("failed to record audit entry")
	}
}
