package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeUnknownStatus       = "UNKNOWN_STATUS"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeMissingShippingInfo = "MISSING_SHIPPING_INFO"
	ErrCodeActorNotAllowed     = "ACTOR_NOT_ALLOWED"
	ErrCodeCouponNotFound      = "COUPON_NOT_FOUND"
	ErrCodeCouponInactive      = "COUPON_INACTIVE"
	ErrCodeCouponExpired       = "COUPON_EXPIRED"
	ErrCodeCouponMinPurchase   = "COUPON_MIN_PURCHASE"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeBespokeNotFound     = "BESPOKE_NOT_FOUND"
	ErrCodeNotCustomizable     = "PRODUCT_NOT_CUSTOMIZABLE"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeCODDisabled         = "COD_DISABLED"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Requested status is not reachable from the current order status")
	ErrMissingShippingInfo = NewDomainError(ErrCodeMissingShippingInfo, "Tracking number and courier are required to ship an order")
	ErrActorNotAllowed     = NewDomainError(ErrCodeActorNotAllowed, "This status change requires an administrator")
	ErrCouponNotFound      = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrCouponInactive      = NewDomainError(ErrCodeCouponInactive, "Coupon is no longer active")
	ErrCouponExpired       = NewDomainError(ErrCodeCouponExpired, "Coupon has expired")
	ErrCouponMinPurchase   = NewDomainError(ErrCodeCouponMinPurchase, "Cart subtotal is below the coupon minimum purchase")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrBespokeNotFound     = NewDomainError(ErrCodeBespokeNotFound, "Bespoke request not found")
	ErrNotCustomizable     = NewDomainError(ErrCodeNotCustomizable, "Product does not offer bespoke tailoring")
	ErrUserNotFound        = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrInsufficientStock   = NewDomainError(ErrCodeInsufficientStock, "Not enough stock for one or more products")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrCODDisabled         = NewDomainError(ErrCodeCODDisabled, "Cash on delivery is currently disabled")
	ErrUnknownStatus       = NewDomainError(ErrCodeUnknownStatus, "Unknown order status")
)
