package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anandam/internal/model"
	"anandam/internal/pricing"
	"anandam/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	repo   repository.CouponRepository
	logger zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(repo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		repo:   repo,
		logger: logger.With().Str("service", "coupon").Logger(),
	}
}

// Apply validates a coupon against the cart subtotal. Rejection happens here,
// at application time, with a specific reason; the cart is left unchanged.
func (s *couponService) Apply(ctx context.Context, code string, subtotal float64) (*model.Coupon, float64, error) {
	if code == "" {
		return nil, 0, model.ErrCouponNotFound
	}

	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to look up coupon")
		return nil, 0, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		s.logger.Debug().Str("code", code).Msg("coupon not found")
		return nil, 0, model.ErrCouponNotFound
	}

	now := time.Now()
	if err := pricing.ValidateCoupon(coupon, subtotal, now); err != nil {
		s.logger.Debug().
			Str("code", coupon.Code).
			Float64("subtotal", subtotal).
			Err(err).
			Msg("coupon rejected")
		return nil, 0, err
	}

	discount := pricing.CouponDiscount(coupon, subtotal)

	s.logger.Debug().
		Str("code", coupon.Code).
		Float64("discount", discount).
		Msg("coupon applied")

	return coupon, discount, nil
}

// List retrieves all coupons.
func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list coupons")
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// Create adds a coupon.
func (s *couponService) Create(ctx context.Context, c *model.Coupon) error {
	if err := validateCoupon(c); err != nil {
		return err
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.Code = strings.ToUpper(c.Code)

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	s.logger.Info().Str("code", c.Code).Msg("coupon created")
	return nil
}

// Update replaces a coupon.
func (s *couponService) Update(ctx context.Context, c *model.Coupon) error {
	if err := validateCoupon(c); err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		return fmt.Errorf("coupon ID is required")
	}

	return s.repo.Update(ctx, c)
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")
	return nil
}

// validateCoupon checks the fields a discount code cannot accept blank or
// out of range.
func validateCoupon(c *model.Coupon) error {
	if c == nil {
		return fmt.Errorf("coupon is nil")
	}
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if c.DiscountType != model.DiscountPercentage && c.DiscountType != model.DiscountFixed {
		return fmt.Errorf("invalid discount type: %s", c.DiscountType)
	}
	if c.Value <= 0 {
		return fmt.Errorf("coupon value must be positive")
	}
	if c.DiscountType == model.DiscountPercentage && c.Value > 100 {
		return fmt.Errorf("percentage coupon cannot exceed 100")
	}
	if c.MinPurchase < 0 {
		return fmt.Errorf("minimum purchase cannot be negative")
	}
	return nil
}
