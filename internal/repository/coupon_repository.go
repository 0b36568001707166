package repository

import (
	"context"
	"fmt"
	"strings"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, discount_type, value, min_purchase, expiry_date, is_active, created_at`

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.Value, &c.MinPurchase,
		&c.ExpiryDate, &c.IsActive, &c.CreatedAt,
	)
}

// GetByCode retrieves a coupon by code, case-insensitively. Codes are stored
// uppercase, so the lookup normalises first.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE code = $1`, couponColumns)

	var c model.Coupon
	err := scanCoupon(r.pool.QueryRow(ctx, query, strings.ToUpper(code)), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// List retrieves all coupons, newest first.
func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons ORDER BY created_at DESC`, couponColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	c.Code = strings.ToUpper(c.Code)

	query := `
		INSERT INTO coupons (id, code, discount_type, value, min_purchase, expiry_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Code, c.DiscountType, c.Value, c.MinPurchase, c.ExpiryDate, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().Str("code", c.Code).Msg("coupon created")
	return nil
}

// Update replaces a coupon's mutable fields.
func (r *couponRepository) Update(ctx context.Context, c *model.Coupon) error {
	c.Code = strings.ToUpper(c.Code)

	query := `
		UPDATE coupons
		SET code = $2, discount_type = $3, value = $4, min_purchase = $5, expiry_date = $6, is_active = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Code, c.DiscountType, c.Value, c.MinPurchase, c.ExpiryDate, c.IsActive,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}

// Delete removes a coupon.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}
