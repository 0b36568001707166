package repository

import (
	"context"
	"fmt"

	"anandam/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingsRepository implements the SettingsRepository interface using
// PostgreSQL. The payment_settings table holds a single row keyed by a
// constant id so concurrent admin writes serialise on the same tuple.
type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

// Get retrieves the payment settings row.
func (r *settingsRepository) Get(ctx context.Context) (*model.PaymentSettings, error) {
	query := `
		SELECT cod_enabled, cod_fee, prepaid_discount, shipping_charge,
			free_shipping_threshold, updated_at
		FROM payment_settings
		WHERE id = 1
	`

	var s model.PaymentSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.CODEnabled, &s.CODFee, &s.PrepaidDiscount,
		&s.ShippingCharge, &s.FreeShippingThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Msg("payment settings not yet written")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query payment settings")
		return nil, fmt.Errorf("failed to query payment settings: %w", err)
	}

	return &s, nil
}

// Set writes the payment settings row, creating it when absent.
func (r *settingsRepository) Set(ctx context.Context, s *model.PaymentSettings) error {
	query := `
		INSERT INTO payment_settings (id, cod_enabled, cod_fee, prepaid_discount,
			shipping_charge, free_shipping_threshold, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			cod_enabled = EXCLUDED.cod_enabled,
			cod_fee = EXCLUDED.cod_fee,
			prepaid_discount = EXCLUDED.prepaid_discount,
			shipping_charge = EXCLUDED.shipping_charge,
			free_shipping_threshold = EXCLUDED.free_shipping_threshold,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		s.CODEnabled, s.CODFee, s.PrepaidDiscount,
		s.ShippingCharge, s.FreeShippingThreshold, s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to write payment settings")
		return fmt.Errorf("failed to write payment settings: %w", err)
	}

	r.logger.Debug().Msg("payment settings written")
	return nil
}
