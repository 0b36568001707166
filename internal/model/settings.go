package model

import "time"

// PaymentSettings is the single process-wide payment configuration. It is
// loaded explicitly and passed into the pricing calculator; only the admin
// settings endpoint writes it.
type PaymentSettings struct {
	CODEnabled            bool      `json:"codEnabled" db:"cod_enabled"`
	CODFee                float64   `json:"codFee" db:"cod_fee"`
	PrepaidDiscount       float64   `json:"prepaidDiscount" db:"prepaid_discount"` // percent
	ShippingCharge        float64   `json:"shippingCharge" db:"shipping_charge"`
	FreeShippingThreshold float64   `json:"freeShippingThreshold" db:"free_shipping_threshold"`
	UpdatedAt             time.Time `json:"updatedAt" db:"updated_at"`
}
