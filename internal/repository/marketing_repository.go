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

// marketingRepository implements the MarketingRepository interface using
// PostgreSQL.
type marketingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMarketingRepository creates a new PostgreSQL-backed marketing repository.
func NewMarketingRepository(pool *pgxpool.Pool, logger zerolog.Logger) MarketingRepository {
	return &marketingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "marketing").Logger(),
	}
}

// ListCampaigns retrieves campaigns, active first.
func (r *marketingRepository) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	query := `
		SELECT id, title, subtitle, banner_image, banner_text, active, link
		FROM campaigns
		ORDER BY active DESC, title
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query campaigns")
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Subtitle, &c.BannerImage, &c.BannerText, &c.Active, &c.Link); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan campaign row")
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating campaign rows")
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}

// SaveCampaign inserts or replaces a campaign.
func (r *marketingRepository) SaveCampaign(ctx context.Context, c *model.Campaign) error {
	query := `
		INSERT INTO campaigns (id, title, subtitle, banner_image, banner_text, active, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			banner_image = EXCLUDED.banner_image,
			banner_text = EXCLUDED.banner_text,
			active = EXCLUDED.active,
			link = EXCLUDED.link
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Title, c.Subtitle, c.BannerImage, c.BannerText, c.Active, c.Link)
	if err != nil {
		r.logger.Error().Err(err).Str("campaign_id", c.ID.String()).Msg("failed to save campaign")
		return fmt.Errorf("failed to save campaign: %w", err)
	}

	return nil
}

// DeleteCampaign removes a campaign.
func (r *marketingRepository) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("campaign_id", id.String()).Msg("failed to delete campaign")
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// GetGiftCard retrieves a gift card by code.
func (r *marketingRepository) GetGiftCard(ctx context.Context, code string) (*model.GiftCard, error) {
	var g model.GiftCard
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, balance FROM gift_cards WHERE code = $1`,
		strings.ToUpper(code),
	).Scan(&g.ID, &g.Code, &g.Balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query gift card")
		return nil, fmt.Errorf("failed to query gift card: %w", err)
	}

	return &g, nil
}

// SaveGiftCard inserts or replaces a gift card.
func (r *marketingRepository) SaveGiftCard(ctx context.Context, g *model.GiftCard) error {
	g.Code = strings.ToUpper(g.Code)

	query := `
		INSERT INTO gift_cards (id, code, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			balance = EXCLUDED.balance
	`

	_, err := r.pool.Exec(ctx, query, g.ID, g.Code, g.Balance)
	if err != nil {
		r.logger.Error().Err(err).Str("code", g.Code).Msg("failed to save gift card")
		return fmt.Errorf("failed to save gift card: %w", err)
	}

	return nil
}
