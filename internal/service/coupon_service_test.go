package service

import (
	"context"
	"testing"
	"time"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeCoupon() *model.Coupon {
	return &model.Coupon{
		ID:           uuid.New(),
		Code:         "WELCOME10",
		DiscountType: model.DiscountPercentage,
		Value:        10,
		MinPurchase:  1000,
		IsActive:     true,
	}
}

func TestCouponService_Apply_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	repo.On("GetByCode", ctx, "WELCOME10").Return(activeCoupon(), nil)

	coupon, discount, err := svc.Apply(ctx, "WELCOME10", 5000)

	require.NoError(t, err)
	require.NotNil(t, coupon)
	assert.Equal(t, 500.0, discount)
	repo.AssertExpectations(t)
}

func TestCouponService_Apply_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	repo.On("GetByCode", ctx, "MISSING").Return(nil, nil)

	_, _, err := svc.Apply(ctx, "MISSING", 5000)

	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestCouponService_Apply_Inactive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	c := activeCoupon()
	c.IsActive = false
	repo.On("GetByCode", ctx, "WELCOME10").Return(c, nil)

	_, _, err := svc.Apply(ctx, "WELCOME10", 5000)

	assert.ErrorIs(t, err, model.ErrCouponInactive)
}

func TestCouponService_Apply_Expired(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	c := activeCoupon()
	yesterday := time.Now().Add(-24 * time.Hour)
	c.ExpiryDate = &yesterday
	repo.On("GetByCode", ctx, "WELCOME10").Return(c, nil)

	_, _, err := svc.Apply(ctx, "WELCOME10", 5000)

	assert.ErrorIs(t, err, model.ErrCouponExpired)
}

func TestCouponService_Apply_BelowMinPurchase(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	repo.On("GetByCode", ctx, "WELCOME10").Return(activeCoupon(), nil)

	_, _, err := svc.Apply(ctx, "WELCOME10", 500)

	assert.ErrorIs(t, err, model.ErrCouponMinPurchase)
}

func TestCouponService_Create_UppercasesCode(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Return(nil)

	c := &model.Coupon{Code: "summer25", DiscountType: model.DiscountFixed, Value: 250}
	err := svc.Create(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", c.Code)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCouponService_Create_RejectsBadValues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	cases := []struct {
		name   string
		coupon *model.Coupon
	}{
		{"empty code", &model.Coupon{DiscountType: model.DiscountFixed, Value: 100}},
		{"bad type", &model.Coupon{Code: "X", DiscountType: "bogo", Value: 100}},
		{"zero value", &model.Coupon{Code: "X", DiscountType: model.DiscountFixed, Value: 0}},
		{"over 100 percent", &model.Coupon{Code: "X", DiscountType: model.DiscountPercentage, Value: 150}},
		{"negative minimum", &model.Coupon{Code: "X", DiscountType: model.DiscountFixed, Value: 100, MinPurchase: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.Create(ctx, tc.coupon))
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestCouponService_Update_RequiresID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo, zerolog.Nop())

	c := &model.Coupon{Code: "X", DiscountType: model.DiscountFixed, Value: 100}

	assert.Error(t, svc.Update(ctx, c))
	repo.AssertNotCalled(t, "Update")
}
