package service

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/model"
	"anandam/internal/repository"

	"github.com/rs/zerolog"
)

// settingsService implements SettingsService.
type settingsService struct {
	repo     repository.SettingsRepository
	audit    AuditService
	defaults model.PaymentSettings
	logger   zerolog.Logger
}

// NewSettingsService creates a new payment settings service.
func NewSettingsService(
	repo repository.SettingsRepository,
	audit AuditService,
	defaults model.PaymentSettings,
	logger zerolog.Logger,
) SettingsService {
	return &settingsService{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
		logger:   logger.With().Str("service", "settings").Logger(),
	}
}

// Get retrieves the effective payment settings.
func (s *settingsService) Get(ctx context.Context) (model.PaymentSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load payment settings")
		return model.PaymentSettings{}, fmt.Errorf("failed to load payment settings: %w", err)
	}
	if stored == nil {
		return s.defaults, nil
	}
	return *stored, nil
}

// Update writes new payment settings and records the change.
func (s *settingsService) Update(ctx context.Context, settings model.PaymentSettings, actorID, actorName string) error {
	if settings.CODFee < 0 || settings.ShippingCharge < 0 || settings.FreeShippingThreshold < 0 {
		return fmt.Errorf("payment amounts cannot be negative")
	}
	if settings.PrepaidDiscount < 0 || settings.PrepaidDiscount > 100 {
		return fmt.Errorf("invalid prepaid discount percentage: %f", settings.PrepaidDiscount)
	}

	settings.UpdatedAt = time.Now()
	if err := s.repo.Set(ctx, &settings); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, "settings.payment_update", actorID, actorName, map[string]any{
		"codEnabled":            settings.CODEnabled,
		"codFee":                settings.CODFee,
		"prepaidDiscount":       settings.PrepaidDiscount,
		"shippingCharge":        settings.ShippingCharge,
		"freeShippingThreshold": settings.FreeShippingThreshold,
	}); err != nil {
		s.logger.Error().Err(err).Msg("failed to record audit entry")
	}

	s.logger.Info().
		Bool("cod_enabled", settings.CODEnabled).
		Float64("shipping_charge", settings.ShippingCharge).
		Msg("payment settings updated")

	return nil
}
