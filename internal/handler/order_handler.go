package handler

import (
	"net/http"

	"anandam/internal/lifecycle"
	"anandam/internal/model"
	"anandam/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order lifecycle HTTP requests.
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

// Checkout handles POST /api/orders requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)

	var req model.CheckoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	// Customers always order as themselves. Only admins may place an
	// order on behalf of another user via the body fields.
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

	order, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders requests. Admins see every order; customers
// see their own.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r)

	if c.Role == model.RoleAdmin {
		if userID := r.URL.Query().Get("userId"); userID != "" {
			orders, err := h.service.ListByUser(r.Context(), userID)
			if err != nil {
				writeDomainError(w, err, h.logger)
				return
			}
			writeJSON(w, http.StatusOK, orders)
			return
		}

		orders, err := h.service.ListAll(r.Context())
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}

	if c.ID == "" {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity required", h.logger)
		return
	}

	orders, err := h.service.ListByUser(r.Context(), c.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, idStr string) {
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
		return
	}

	c := callerFrom(r)
	if c.Role != model.RoleAdmin && order.UserID != c.ID {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "order belongs to another user", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Transition handles POST /api/orders/{id}/transition requests. The acting
// role decides which transitions are permitted.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request, idStr string) {
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.TransitionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c := callerFrom(r)
	actor := lifecycle.ActorCustomer
	if c.Role == model.RoleAdmin {
		actor = lifecycle.ActorAdmin
	}

	order, err := h.service.Transition(r.Context(), orderID, req, actor, c.ID, c.Name)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Quote handles POST /api/orders/quote requests: price a cart without
// creating an order.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subtotal      float64             `json:"subtotal"`
		PaymentMethod model.PaymentMethod `json:"paymentMethod"`
		CouponCode    *string             `json:"couponCode,omitempty"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	quote, err := h.service.Quote(r.Context(), req.Subtotal, req.PaymentMethod, req.CouponCode)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
