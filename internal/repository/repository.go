package repository

import (
	"context"
	"time"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// List retrieves products matching the filter, newest first.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces the mutable fields of a product.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically reduces stock within a transaction. It fails
	// with ErrInsufficientStock when fewer than qty units remain.
	DecrementStock(ctx context.Context, tx pgx.Tx, id string, qty int) error

	// AdjustStock adds delta (possibly negative) to a product's stock.
	AdjustStock(ctx context.Context, id string, delta int) error

	// ListLowStock retrieves products at or below the given stock threshold.
	ListLowStock(ctx context.Context, threshold int) ([]model.Product, error)

	// AddReview inserts a review and refreshes the product's rating aggregate.
	AddReview(ctx context.Context, review *model.Review) error

	// ListReviews retrieves a product's reviews, newest first.
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListStale retrieves orders in any of the given statuses created at or
	// before the cutoff, oldest first.
	ListStale(ctx context.Context, statuses []model.OrderStatus, cutoff time.Time) ([]model.Order, error)

	// ListSince retrieves orders created at or after the cutoff.
	ListSince(ctx context.Context, cutoff time.Time) ([]model.Order, error)

	// UpdateStatus persists a transitioned order. Status, timeline, shipping
	// details and reasons are written in a single statement guarded by the
	// expected pre-transition status; it reports false when another writer
	// moved the order first.
	UpdateStatus(ctx context.Context, order *model.Order, expected model.OrderStatus) (bool, error)
}

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	// GetByCode retrieves a coupon by code, case-insensitively. Returns nil
	// when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// List retrieves all coupons, newest first.
	List(ctx context.Context) ([]model.Coupon, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, c *model.Coupon) error

	// Update replaces a coupon's mutable fields.
	Update(ctx context.Context, c *model.Coupon) error

	// Delete removes a coupon.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BespokeRepository defines the interface for tailoring request data access.
type BespokeRepository interface {
	// Create inserts a new bespoke request.
	Create(ctx context.Context, req *model.BespokeRequest) error

	// GetByID retrieves a bespoke request. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.BespokeRequest, error)

	// ListAll retrieves all bespoke requests, newest first.
	ListAll(ctx context.Context) ([]model.BespokeRequest, error)

	// ListByUser retrieves a user's bespoke requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.BespokeRequest, error)

	// UpdateStatus advances a request's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BespokeStatus) error
}

// SettingsRepository defines the interface for payment settings access.
type SettingsRepository interface {
	// Get retrieves the payment settings row. Returns nil when never written.
	Get(ctx context.Context) (*model.PaymentSettings, error)

	// Set writes the payment settings row, creating it when absent.
	Set(ctx context.Context, s *model.PaymentSettings) error
}

// AuditRepository defines the interface for the append-only audit log.
type AuditRepository interface {
	// Append inserts a new audit entry.
	Append(ctx context.Context, entry *model.AuditLog) error

	// List retrieves audit entries, newest first.
	List(ctx context.Context, limit, offset int) ([]model.AuditLog, error)
}

// UserRepository defines the interface for account records.
type UserRepository interface {
	// GetByID retrieves a user. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Upsert inserts or refreshes a user record.
	Upsert(ctx context.Context, u *model.User) error

	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// SetRole updates a user's role.
	SetRole(ctx context.Context, id string, role model.Role) error
}

// MarketingRepository defines the interface for campaigns and gift cards.
type MarketingRepository interface {
	// ListCampaigns retrieves campaigns, active first.
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)

	// SaveCampaign inserts or replaces a campaign.
	SaveCampaign(ctx context.Context, c *model.Campaign) error

	// DeleteCampaign removes a campaign.
	DeleteCampaign(ctx context.Context, id uuid.UUID) error

	// GetGiftCard retrieves a gift card by code. Returns nil when absent.
	GetGiftCard(ctx context.Context, code string) (*model.GiftCard, error)

	// SaveGiftCard inserts or replaces a gift card.
	SaveGiftCard(ctx context.Context, g *model.GiftCard) error
}
