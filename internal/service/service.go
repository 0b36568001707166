package service

import (
	"context"

	"anandam/internal/lifecycle"
	"anandam/internal/model"
	"anandam/internal/pricing"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a product to the catalogue (admin).
	Create(ctx context.Context, p *model.Product) error

	// Update replaces a product's mutable fields (admin).
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product (admin).
	Delete(ctx context.Context, id string) error

	// AdjustStock adds delta to a product's stock (admin).
	AdjustStock(ctx context.Context, id string, delta int) error

	// AddReview records a customer review and refreshes the rating aggregate.
	AddReview(ctx context.Context, review *model.Review) error

	// ListReviews retrieves a product's reviews.
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
}

// OrderService defines operations for checkout and the order lifecycle.
type OrderService interface {
	// Checkout validates the cart, prices it, snapshots the items and
	// persists the order with a seeded timeline.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.Order, error)

	// Transition applies a status change through the lifecycle engine and
	// persists it atomically.
	Transition(ctx context.Context, id uuid.UUID, req model.TransitionRequest, actor lifecycle.Actor, actorID, actorName string) (*model.Order, error)

	// GetByID retrieves an order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first (admin).
	ListAll(ctx context.Context) ([]model.Order, error)

	// Quote prices a cart subtotal without creating an order.
	Quote(ctx context.Context, subtotal float64, method model.PaymentMethod, couponCode *string) (pricing.Quote, error)
}

// CouponService defines operations for discount codes.
type CouponService interface {
	// Apply validates a coupon against the cart subtotal and returns it with
	// the discount it would grant.
	Apply(ctx context.Context, code string, subtotal float64) (*model.Coupon, float64, error)

	// List retrieves all coupons (admin).
	List(ctx context.Context) ([]model.Coupon, error)

	// Create adds a coupon (admin).
	Create(ctx context.Context, c *model.Coupon) error

	// Update replaces a coupon (admin).
	Update(ctx context.Context, c *model.Coupon) error

	// Delete removes a coupon (admin).
	Delete(ctx context.Context, id uuid.UUID) error
}

// BespokeService defines operations for tailoring consultations.
type BespokeService interface {
	// Create records a new customer tailoring request.
	Create(ctx context.Context, req *model.BespokeRequest) error

	// ListAll retrieves all requests (admin).
	ListAll(ctx context.Context) ([]model.BespokeRequest, error)

	// ListByUser retrieves a user's requests.
	ListByUser(ctx context.Context, userID string) ([]model.BespokeRequest, error)

	// Advance moves a request to the given status (admin).
	Advance(ctx context.Context, id uuid.UUID, status model.BespokeStatus, actorID, actorName string) error
}

// SettingsService defines operations on the payment configuration.
type SettingsService interface {
	// Get retrieves the effective payment settings, falling back to the
	// configured defaults before the first admin write.
	Get(ctx context.Context) (model.PaymentSettings, error)

	// Update writes new payment settings (admin).
	Update(ctx context.Context, s model.PaymentSettings, actorID, actorName string) error
}

// AuditService defines operations on the admin action trail.
type AuditService interface {
	// Record appends an audit entry.
	Record(ctx context.Context, event, actorID, actorName string, metadata map[string]any) error

	// List retrieves audit entries, newest first.
	List(ctx context.Context, limit, offset int) ([]model.AuditLog, error)
}

// UserService defines operations on account records.
type UserService interface {
	// GetByID retrieves a user. Returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Upsert inserts or refreshes a user's profile.
	Upsert(ctx context.Context, u *model.User) error

	// List retrieves all users (admin).
	List(ctx context.Context) ([]model.User, error)

	// SetRole changes a user's role (admin).
	SetRole(ctx context.Context, id string, role model.Role, actorID, actorName string) error
}

// MarketingService defines operations for campaigns and gift cards.
type MarketingService interface {
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	SaveCampaign(ctx context.Context, c *model.Campaign) error
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
	GetGiftCard(ctx context.Context, code string) (*model.GiftCard, error)
	SaveGiftCard(ctx context.Context, g *model.GiftCard) error
}
