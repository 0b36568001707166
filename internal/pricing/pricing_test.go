package pricing

import (
	"testing"
	"time"

	"anandam/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() model.PaymentSettings {
	return model.PaymentSettings{
		CODEnabled:            true,
		CODFee:                150,
		PrepaidDiscount:       5,
		ShippingCharge:        99,
		FreeShippingThreshold: 5000,
	}
}

func TestCompute_PrepaidAboveThreshold(t *testing.T) {
	// 10000 prepaid: free shipping, no COD fee, 5% off.
	q, err := Compute(10000, model.PaymentPrePaid, testSettings(), nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, q.ShippingCost)
	assert.Equal(t, 0.0, q.CODFee)
	assert.Equal(t, 500.0, q.Discount)
	assert.Equal(t, 9500.0, q.Total)
}

func TestCompute_CODBelowThreshold(t *testing.T) {
	// 3000 COD: shipping charged, COD fee added, no discount.
	q, err := Compute(3000, model.PaymentCOD, testSettings(), nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 99.0, q.ShippingCost)
	assert.Equal(t, 150.0, q.CODFee)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 3249.0, q.Total)
}

func TestCompute_FreeShippingBoundary(t *testing.T) {
	settings := testSettings()

	below, err := Compute(4999, model.PaymentPrePaid, settings, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 99.0, below.ShippingCost)

	at, err := Compute(5000, model.PaymentPrePaid, settings, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, at.ShippingCost)
}

func TestCompute_CODFeeSkippedWhenDisabled(t *testing.T) {
	settings := testSettings()
	settings.CODEnabled = false

	q, err := Compute(3000, model.PaymentCOD, settings, nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, q.CODFee)
	assert.Equal(t, 3099.0, q.Total)
}

func TestCompute_CODFeeSkippedForPrepaid(t *testing.T) {
	q, err := Compute(3000, model.PaymentPrePaid, testSettings(), nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, q.CODFee)
}

func TestCompute_PrepaidDiscountScalesWithSubtotal(t *testing.T) {
	settings := testSettings()

	small, err := Compute(6000, model.PaymentPrePaid, settings, nil, time.Now())
	require.NoError(t, err)
	large, err := Compute(12000, model.PaymentPrePaid, settings, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 300.0, small.Discount)
	assert.Equal(t, 600.0, large.Discount)
}

func TestCompute_NoPrepaidDiscountForCOD(t *testing.T) {
	q, err := Compute(10000, model.PaymentCOD, testSettings(), nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 10150.0, q.Total)
}

func TestCompute_CouponStacksWithPrepaidDiscount(t *testing.T) {
	coupon := &model.Coupon{
		Code:         "FESTIVE500",
		DiscountType: model.DiscountFixed,
		Value:        500,
		IsActive:     true,
	}

	q, err := Compute(10000, model.PaymentPrePaid, testSettings(), coupon, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1000.0, q.Discount)
	assert.Equal(t, 9000.0, q.Total)
}

func TestCompute_PercentageCouponRounds(t *testing.T) {
	coupon := &model.Coupon{
		Code:         "WELCOME10",
		DiscountType: model.DiscountPercentage,
		Value:        10,
		IsActive:     true,
	}

	q, err := Compute(3333, model.PaymentCOD, testSettings(), coupon, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 333.0, q.Discount)
}

func TestCompute_InvalidCouponFailsComputation(t *testing.T) {
	coupon := &model.Coupon{
		Code:         "OLD",
		DiscountType: model.DiscountFixed,
		Value:        500,
		IsActive:     false,
	}

	_, err := Compute(10000, model.PaymentPrePaid, testSettings(), coupon, time.Now())

	assert.ErrorIs(t, err, model.ErrCouponInactive)
}

func TestCompute_TotalClampedAtZero(t *testing.T) {
	coupon := &model.Coupon{
		Code:         "BIGONE",
		DiscountType: model.DiscountFixed,
		Value:        10000,
		IsActive:     true,
	}

	q, err := Compute(500, model.PaymentPrePaid, testSettings(), coupon, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Total)
}

func TestValidateCoupon_Missing(t *testing.T) {
	err := ValidateCoupon(nil, 1000, time.Now())
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestValidateCoupon_Inactive(t *testing.T) {
	c := &model.Coupon{Code: "X", IsActive: false}
	err := ValidateCoupon(c, 1000, time.Now())
	assert.ErrorIs(t, err, model.ErrCouponInactive)
}

func TestValidateCoupon_Expired(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	c := &model.Coupon{Code: "X", IsActive: true, ExpiryDate: &yesterday}

	err := ValidateCoupon(c, 1000, time.Now())

	assert.ErrorIs(t, err, model.ErrCouponExpired)
}

func TestValidateCoupon_MinPurchase(t *testing.T) {
	c := &model.Coupon{Code: "X", IsActive: true, MinPurchase: 1000}

	err := ValidateCoupon(c, 500, time.Now())
	assert.ErrorIs(t, err, model.ErrCouponMinPurchase)

	// Exactly at the minimum qualifies.
	err = ValidateCoupon(c, 1000, time.Now())
	assert.NoError(t, err)
}

func TestValidateCoupon_NoExpirySet(t *testing.T) {
	c := &model.Coupon{Code: "X", IsActive: true}
	err := ValidateCoupon(c, 1000, time.Now())
	assert.NoError(t, err)
}

func TestCouponDiscount(t *testing.T) {
	pct := &model.Coupon{DiscountType: model.DiscountPercentage, Value: 10}
	fixed := &model.Coupon{DiscountType: model.DiscountFixed, Value: 250}

	assert.Equal(t, 500.0, CouponDiscount(pct, 5000))
	assert.Equal(t, 250.0, CouponDiscount(fixed, 5000))
}

func TestRestock_SuggestsShortfall(t *testing.T) {
	// 60 units over 30 days is 2/day; 30 days of lead time needs 60,
	// minus 10 in stock leaves 50 to reorder.
	advice := Restock(60, 30, 30, 10)

	assert.Equal(t, 2.0, advice.AvgDailySales)
	assert.Equal(t, 50, advice.SuggestedReorder)
}

func TestRestock_NoSuggestionWhenStocked(t *testing.T) {
	advice := Restock(10, 30, 30, 100)
	assert.Equal(t, 0, advice.SuggestedReorder)
}

func TestRestock_RoundsDemandUp(t *testing.T) {
	// 1 unit over 30 days against a 30 day lead time needs 1 unit.
	advice := Restock(1, 30, 30, 0)
	assert.Equal(t, 1, advice.SuggestedReorder)
}

func TestRestock_ZeroLookbackDoesNotDivideByZero(t *testing.T) {
	advice := Restock(5, 0, 10, 0)
	assert.Equal(t, 50, advice.SuggestedReorder)
}
