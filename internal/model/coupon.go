package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType selects how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is an admin-managed discount code. Codes are stored uppercase and
// matched case-insensitively.
type Coupon struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Code         string       `json:"code" db:"code"`
	DiscountType DiscountType `json:"discountType" db:"discount_type"`
	Value        float64      `json:"value" db:"value"`
	MinPurchase  float64      `json:"minPurchase,omitempty" db:"min_purchase"`
	ExpiryDate   *time.Time   `json:"expiryDate,omitempty" db:"expiry_date"`
	IsActive     bool         `json:"isActive" db:"is_active"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// Campaign is a marketing banner shown on the storefront.
type Campaign struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    string    `json:"subtitle" db:"subtitle"`
	BannerImage string    `json:"bannerImage,omitempty" db:"banner_image"`
	BannerText  string    `json:"bannerText" db:"banner_text"`
	Active      bool      `json:"active" db:"active"`
	Link        string    `json:"link,omitempty" db:"link"`
}

// GiftCard is a stored-value card. Balance bookkeeping only; gift cards do
// not participate in order pricing.
type GiftCard struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Code    string    `json:"code" db:"code"`
	Balance float64   `json:"balance" db:"balance"`
}
