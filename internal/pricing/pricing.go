// Package pricing computes order totals. Everything here is a pure function
// of its inputs: settings and the clock are passed in, nothing is read from
// ambient state, and identical inputs always produce identical quotes.
package pricing

import (
	"math"
	"time"

	"anandam/internal/model"
)

// Quote is the derived pricing for a cart subtotal.
type Quote struct {
	ShippingCost float64 `json:"shippingCost"`
	CODFee       float64 `json:"codFee"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// ValidateCoupon checks a coupon against the cart subtotal at application
// time. It returns a specific rejection reason rather than silently zeroing
// the discount later.
func ValidateCoupon(c *model.Coupon, subtotal float64, now time.Time) error {
	if c == nil {
		return model.ErrCouponNotFound
	}
	if !c.IsActive {
		return model.ErrCouponInactive
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(now) {
		return model.ErrCouponExpired
	}
	if subtotal < c.MinPurchase {
		return model.ErrCouponMinPurchase
	}
	return nil
}

// CouponDiscount computes the discount amount for a coupon that has already
// passed ValidateCoupon.
func CouponDiscount(c *model.Coupon, subtotal float64) float64 {
	if c.DiscountType == model.DiscountPercentage {
		return math.Round(subtotal * c.Value / 100)
	}
	return c.Value
}

// Compute derives shipping, COD fee, discount and the payable total.
//
// Rules, in order: free shipping at the threshold, COD surcharge only when
// the method is COD and COD is enabled, prepaid percentage discount for
// PrePaid, then the coupon discount. The total is clamped at zero. A coupon
// that fails validation makes the whole computation fail; callers reject it
// at apply time rather than checking out with a silently dropped discount.
func Compute(subtotal float64, method model.PaymentMethod, settings model.PaymentSettings, coupon *model.Coupon, now time.Time) (Quote, error) {
	var q Quote

	if subtotal < settings.FreeShippingThreshold {
		q.ShippingCost = settings.ShippingCharge
	}

	if method == model.PaymentCOD && settings.CODEnabled {
		q.CODFee = settings.CODFee
	}

	var prepaid float64
	if method == model.PaymentPrePaid {
		prepaid = math.Round(subtotal * settings.PrepaidDiscount / 100)
	}

	var fromCoupon float64
	if coupon != nil {
		if err := ValidateCoupon(coupon, subtotal, now); err != nil {
			return Quote{}, err
		}
		fromCoupon = CouponDiscount(coupon, subtotal)
	}

	q.Discount = prepaid + fromCoupon
	q.Total = math.Max(0, subtotal+q.ShippingCost+q.CODFee-q.Discount)

	return q, nil
}

// RestockAdvice is a reorder suggestion for one product. Advisory only;
// nothing here touches stock.
type RestockAdvice struct {
	AvgDailySales    float64 `json:"avgDailySales"`
	SuggestedReorder int     `json:"suggestedReorder"`
}

// Restock estimates how many units to reorder so that stock covers the
// supplier lead time at the observed sales rate.
func Restock(unitsSold, lookbackDays, leadTimeDays, currentStock int) RestockAdvice {
	days := lookbackDays
	if days < 1 {
		days = 1
	}
	avg := float64(unitsSold) / float64(days)
	suggested := int(math.Ceil(avg*float64(leadTimeDays))) - currentStock
	if suggested < 0 {
		suggested = 0
	}
	return RestockAdvice{AvgDailySales: avg, SuggestedReorder: suggested}
}
