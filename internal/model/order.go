package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order lifecycle states. Parsing external
// input goes through ParseOrderStatus so an unmodelled string can never reach
// the transition logic.
type OrderStatus string

const (
	StatusPending         OrderStatus = "Pending"
	StatusConfirmed       OrderStatus = "Confirmed"
	StatusPacked          OrderStatus = "Packed"
	StatusShipped         OrderStatus = "Shipped"
	StatusDelivered       OrderStatus = "Delivered"
	StatusCancelled       OrderStatus = "Cancelled"
	StatusReturnRequested OrderStatus = "Return Requested"
	StatusReturned        OrderStatus = "Returned"
)

// ParseOrderStatus maps a raw string onto the closed status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped,
		StatusDelivered, StatusCancelled, StatusReturnRequested, StatusReturned:
		return OrderStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// PaymentMethod selects how an order is paid for.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPrePaid PaymentMethod = "PrePaid"
)

// PaymentStatus tracks the payment state independently of fulfilment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// MeasurementUnit tags bespoke measurements.
type MeasurementUnit string

const (
	UnitInches MeasurementUnit = "Inches"
	UnitCM     MeasurementUnit = "CM"
)

// Measurements is a bespoke tailoring measurement set. All fields optional.
type Measurements struct {
	Bust     *float64 `json:"bust,omitempty"`
	Waist    *float64 `json:"waist,omitempty"`
	Hips     *float64 `json:"hips,omitempty"`
	Length   *float64 `json:"length,omitempty"`
	Shoulder *float64 `json:"shoulder,omitempty"`
	Sleeve   *float64 `json:"sleeve,omitempty"`
}

// Customization carries tailoring details on a cart line.
type Customization struct {
	Measurements Measurements    `json:"measurements"`
	Unit         MeasurementUnit `json:"unit"`
	Notes        string          `json:"notes,omitempty"`
}

// CartItem is a product snapshot captured at checkout. Once copied into an
// order it never changes, even if the catalogue entry does.
type CartItem struct {
	ProductID     string         `json:"productId"`
	Name          string         `json:"name"`
	Images        []string       `json:"images,omitempty"`
	UnitPrice     float64        `json:"unitPrice"`
	SelectedSize  string         `json:"selectedSize"`
	Quantity      int            `json:"quantity"`
	Customization *Customization `json:"customization,omitempty"`
}

// TimelineEntry is one status-change event in an order's history.
type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// Address is a shipping destination.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Order is the central entity. The timeline is append-only: one entry per
// status change, oldest first, its last entry always matching Status.
type Order struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	UserID             string          `json:"userId" db:"user_id"`
	UserName           string          `json:"userName" db:"user_name"`
	Items              []CartItem      `json:"items" db:"items"`
	Subtotal           float64         `json:"subtotal" db:"subtotal"`
	ShippingCost       float64         `json:"shippingCost" db:"shipping_cost"`
	CODFee             float64         `json:"codFee" db:"cod_fee"`
	Discount           float64         `json:"discount" db:"discount"`
	Total              float64         `json:"total" db:"total"`
	Status             OrderStatus     `json:"status" db:"status"`
	Timeline           []TimelineEntry `json:"timeline" db:"timeline"`
	TrackingNumber     string          `json:"trackingNumber,omitempty" db:"tracking_number"`
	Courier            string          `json:"courier,omitempty" db:"courier"`
	ShippingAddress    Address         `json:"shippingAddress" db:"shipping_address"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	ReturnReason       string          `json:"returnReason,omitempty" db:"return_reason"`
	CancellationReason string          `json:"cancellationReason,omitempty" db:"cancellation_reason"`
	CouponCode         *string         `json:"couponCode,omitempty" db:"coupon_code"`
	CreatedAt          time.Time       `json:"date" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	UserID          string        `json:"userId"`
	UserName        string        `json:"userName"`
	Items           []CartItem    `json:"items"`
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	CouponCode      *string       `json:"couponCode,omitempty"`
}

// TransitionRequest is the payload for changing an order's status.
type TransitionRequest struct {
	Status         string `json:"status"`
	Note           string `json:"note,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Courier        string `json:"courier,omitempty"`
	Reason         string `json:"reason,omitempty"`
}
