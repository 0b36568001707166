package service

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/lifecycle"
	"anandam/internal/model"
	"anandam/internal/pricing"
	"anandam/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	couponRepo   repository.CouponRepository
	settingsRepo repository.SettingsRepository
	audit        AuditService
	defaults     model.PaymentSettings
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	settingsRepo repository.SettingsRepository,
	audit AuditService,
	defaults model.PaymentSettings,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		couponRepo:   couponRepo,
		settingsRepo: settingsRepo,
		audit:        audit,
		defaults:     defaults,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// settings returns the effective payment settings, falling back to the
// configured defaults before the first admin write.
func (s *orderService) settings(ctx context.Context) (model.PaymentSettings, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return model.PaymentSettings{}, err
	}
	if stored == nil {
		return s.defaults, nil
	}
	return *stored, nil
}

// coupon loads a coupon by code, mapping absence to ErrCouponNotFound.
func (s *orderService) coupon(ctx context.Context, code string) (*model.Coupon, error) {
	c, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}
	return c, nil
}

// Checkout validates the cart, prices it, snapshots the items and persists
// the order with a seeded timeline. Stock decrements and the order insert
// share one transaction so a failed checkout never holds units.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.Order, error) {
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	settings, err := s.settings(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load payment settings")
		return nil, fmt.Errorf("failed to load payment settings: %w", err)
	}

	if req.PaymentMethod == model.PaymentCOD && !settings.CODEnabled {
		return nil, model.ErrCODDisabled
	}

	// Re-price lines from the catalogue so the client cannot dictate prices.
	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart products")
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal float64
	items := make([]model.CartItem, len(req.Items))
	for i, line := range req.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", line.ProductID).Msg("cart references unknown product")
			return nil, model.ErrProductNotFound
		}
		items[i] = model.CartItem{
			ProductID:     p.ID,
			Name:          p.Name,
			Images:        p.Images,
			UnitPrice:     p.Price,
			SelectedSize:  line.SelectedSize,
			Quantity:      line.Quantity,
			Customization: line.Customization,
		}
		subtotal += p.Price * float64(line.Quantity)
	}

	var coupon *model.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		coupon, err = s.coupon(ctx, *req.CouponCode)
		if err != nil {
			s.logger.Warn().Str("coupon_code", *req.CouponCode).Err(err).Msg("coupon lookup failed")
			return nil, err
		}
	}

	now := time.Now()
	quote, err := pricing.Compute(subtotal, req.PaymentMethod, settings, coupon, now)
	if err != nil {
		s.logger.Warn().Float64("subtotal", subtotal).Err(err).Msg("pricing rejected the cart")
		return nil, err
	}

	order := &model.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		UserName:        req.UserName,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    quote.ShippingCost,
		CODFee:          quote.CODFee,
		Discount:        quote.Discount,
		Total:           quote.Total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentPending,
		CouponCode:      req.CouponCode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.PaymentMethod == model.PaymentPrePaid {
		order.PaymentStatus = model.PaymentPaid
	}
	lifecycle.Seed(order, now)

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, item := range items {
		if err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn().
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Err(err).
				Msg("stock reservation failed")
			return nil, err
		}
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", order.UserID).
		Float64("total", order.Total).
		Int("item_count", len(items)).
		Msg("order created successfully")

	return order, nil
}

// Transition applies a status change through the lifecycle engine and
// persists it with a guarded update. Retrying the same target after a
// successful write is a no-op, so callers may safely retry on transient
// persistence failures.
func (s *orderService) Transition(ctx context.Context, id uuid.UUID, req model.TransitionRequest, actor lifecycle.Actor, actorID, actorName string) (*model.Order, error) {
	target, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to load order")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if actor == lifecycle.ActorCustomer && order.UserID != actorID {
		return nil, model.ErrActorNotAllowed
	}

	expected := order.Status
	changed, err := lifecycle.Transition(order, lifecycle.Request{
		Target:         target,
		Actor:          actor,
		Note:           req.Note,
		TrackingNumber: req.TrackingNumber,
		Courier:        req.Courier,
		Reason:         req.Reason,
		Now:            time.Now(),
	})
	if err != nil {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(expected)).
			Str("to", string(target)).
			Err(err).
			Msg("transition rejected")
		return nil, err
	}
	if !changed {
		// Repeat submission of the current status.
		return order, nil
	}

	// COD is collected at the door, so delivery settles payment.
	if target == model.StatusDelivered && order.PaymentMethod == model.PaymentCOD {
		order.PaymentStatus = model.PaymentPaid
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, order, expected)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent writer moved the order first. Reload and report the
		// conflict rather than overwriting its transition.
		return nil, model.ErrInvalidTransition
	}

	if target == model.StatusCancelled || target == model.StatusReturned {
		s.restock(ctx, order)
	}

	if actor == lifecycle.ActorAdmin {
		meta := map[string]any{"orderId": order.ID.String(), "from": string(expected), "to": string(target)}
		if (target == model.StatusCancelled || target == model.StatusReturned) && order.PaymentStatus == model.PaymentPaid {
			meta["refundDue"] = true
		}
		if err := s.audit.Record(ctx, "order.status_change", actorID, actorName, meta); err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to record audit entry")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(expected)).
		Str("to", string(target)).
		Str("actor", string(actor)).
		Msg("order transitioned")

	return order, nil
}

// restock returns cancelled or returned units to the catalogue. Best effort:
// the order transition has already committed, so a failed adjustment is
// logged for manual follow-up instead of failing the call.
func (s *orderService) restock(ctx context.Context, order *model.Order) {
	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("failed to restock product")
		}
	}
}

// GetByID retrieves an order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListByUser retrieves a user's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders by user")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves all orders, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Quote prices a cart subtotal without creating an order.
func (s *orderService) Quote(ctx context.Context, subtotal float64, method model.PaymentMethod, couponCode *string) (pricing.Quote, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("failed to load payment settings: %w", err)
	}

	var coupon *model.Coupon
	if couponCode != nil && *couponCode != "" {
		coupon, err = s.coupon(ctx, *couponCode)
		if err != nil {
			return pricing.Quote{}, err
		}
	}

	return pricing.Compute(subtotal, method, settings, coupon, time.Now())
}

// validateCheckoutRequest validates the checkout request.
func (s *orderService) validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("checkout request is nil")
	}

	if req.UserID == "" {
		return fmt.Errorf("user ID is required")
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	if req.PaymentMethod != model.PaymentCOD && req.PaymentMethod != model.PaymentPrePaid {
		return fmt.Errorf("invalid payment method: %s", req.PaymentMethod)
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
