package service

import (
	"context"
	"fmt"

	"anandam/internal/model"
	"anandam/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// marketingService implements MarketingService.
type marketingService struct {
	repo   repository.MarketingRepository
	logger zerolog.Logger
}

// NewMarketingService creates a new marketing service.
func NewMarketingService(repo repository.MarketingRepository, logger zerolog.Logger) MarketingService {
	return &marketingService{
		repo:   repo,
		logger: logger.With().Str("service", "marketing").Logger(),
	}
}

func (s *marketingService) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list campaigns")
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *marketingService) SaveCampaign(ctx context.Context, c *model.Campaign) error {
	if c == nil {
		return fmt.Errorf("campaign is nil")
	}
	if c.Title == "" {
		return fmt.Errorf("campaign title is required")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	return s.repo.SaveCampaign(ctx, c)
}

func (s *marketingService) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCampaign(ctx, id)
}

func (s *marketingService) GetGiftCard(ctx context.Context, code string) (*model.GiftCard, error) {
	if code == "" {
		return nil, fmt.Errorf("gift card code is required")
	}
	return s.repo.GetGiftCard(ctx, code)
}

func (s *marketingService) SaveGiftCard(ctx context.Context, g *model.GiftCard) error {
	if g == nil {
		return fmt.Errorf("gift card is nil")
	}
	if g.Code == "" {
		return fmt.Errorf("gift card code is required")
	}
	if g.Balance < 0 {
		return fmt.Errorf("gift card balance cannot be negative")
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	return s.repo.SaveGiftCard(ctx, g)
}
