package service

import (
	"context"
	"testing"

	"anandam/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Get_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	audit := new(MockAuditService)
	svc := NewSettingsService(repo, audit, testDefaults(), zerolog.Nop())

	repo.On("Get", ctx).Return(nil, nil)

	settings, err := svc.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, 150.0, settings.CODFee)
	assert.Equal(t, 5000.0, settings.FreeShippingThreshold)
}

func TestSettingsService_Get_PrefersStoredRow(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	audit := new(MockAuditService)
	svc := NewSettingsService(repo, audit, testDefaults(), zerolog.Nop())

	stored := testDefaults()
	stored.CODFee = 200
	repo.On("Get", ctx).Return(&stored, nil)

	settings, err := svc.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, 200.0, settings.CODFee)
}

func TestSettingsService_Update_PersistsAndAudits(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	audit := new(MockAuditService)
	svc := NewSettingsService(repo, audit, testDefaults(), zerolog.Nop())

	repo.On("Set", ctx, mock.AnythingOfType("*model.PaymentSettings")).Return(nil)
	audit.On("Record", ctx, "settings.payment_update", "a1", "Admin", mock.Anything).Return(nil)

	settings := testDefaults()
	settings.ShippingCharge = 79

	err := svc.Update(ctx, settings, "a1", "Admin")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestSettingsService_Update_RejectsBadValues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, new(MockAuditService), testDefaults(), zerolog.Nop())

	cases := []struct {
		name   string
		mutate func(*model.PaymentSettings)
	}{
		{"negative cod fee", func(s *model.PaymentSettings) { s.CODFee = -1 }},
		{"negative shipping", func(s *model.PaymentSettings) { s.ShippingCharge = -1 }},
		{"negative threshold", func(s *model.PaymentSettings) { s.FreeShippingThreshold = -1 }},
		{"discount over 100", func(s *model.PaymentSettings) { s.PrepaidDiscount = 120 }},
		{"negative discount", func(s *model.PaymentSettings) { s.PrepaidDiscount = -5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := testDefaults()
			tc.mutate(&settings)
			assert.Error(t, svc.Update(ctx, settings, "a1", "Admin"))
		})
	}

	repo.AssertNotCalled(t, "Set")
}
