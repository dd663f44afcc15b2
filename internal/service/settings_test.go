package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/i18n"
	"github.com/pkordes/mileage-logbook/internal/service"
)

func echoSettingsRepo(saved *domain.Settings) *mockSettingsRepo {
	return &mockSettingsRepo{
		save: func(_ context.Context, s domain.Settings) (domain.Settings, error) {
			*saved = s
			return s, nil
		},
	}
}

func rosterRepo() *mockVehicleRepo {
	return &mockVehicleRepo{
		getByID: func(_ context.Context, id int64) (domain.Vehicle, error) {
			switch id {
			case 1:
				return domain.Vehicle{ID: 1, Active: true}, nil
			case 2:
				return domain.Vehicle{ID: 2, Active: false}, nil
			}
			return domain.Vehicle{}, domain.ErrNotFound
		},
	}
}

func TestSettingsService_Save_Valid(t *testing.T) {
	var saved domain.Settings
	svc := service.NewSettingsService(echoSettingsRepo(&saved), rosterRepo(), i18n.Default())

	in := domain.Settings{
		WebhookURL:       "  https://hooks.example.com/trips ",
		WebhookEnabled:   true,
		Locale:           "en_US",
		Currency:         "usd",
		DefaultVehicleID: ptr(int64(1)),
		MileageRate:      decimal.RequireFromString("0.21"),
	}

	got, err := svc.Save(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "USD", saved.Currency)
	assert.Equal(t, "https://hooks.example.com/trips", saved.WebhookURL)
	assert.Equal(t, saved, got)
}

func TestSettingsService_Save_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *domain.Settings)
	}{
		{"unsupported locale", func(s *domain.Settings) { s.Locale = "fr_FR" }},
		{"unknown currency", func(s *domain.Settings) { s.Currency = "ABC" }},
		{"malformed currency", func(s *domain.Settings) { s.Currency = "euro" }},
		{"negative rate", func(s *domain.Settings) { s.MileageRate = decimal.RequireFromString("-0.01") }},
		{"relative webhook url", func(s *domain.Settings) { s.WebhookURL = "/hooks" }},
		{"non-http webhook url", func(s *domain.Settings) { s.WebhookURL = "ftp://example.com" }},
		{"unknown default vehicle", func(s *domain.Settings) { s.DefaultVehicleID = ptr(int64(99)) }},
		{"inactive default vehicle", func(s *domain.Settings) { s.DefaultVehicleID = ptr(int64(2)) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockSettingsRepo{
				save: func(_ context.Context, _ domain.Settings) (domain.Settings, error) {
					t.Fatal("repo must not be called for invalid settings")
					return domain.Settings{}, nil
				},
			}
			svc := service.NewSettingsService(repo, rosterRepo(), i18n.Default())
			in := domain.DefaultSettings()
			tc.mutate(&in)

			_, err := svc.Save(context.Background(), in)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSettingsService_Save_WebhookDisabledWithoutURL(t *testing.T) {
	var saved domain.Settings
	svc := service.NewSettingsService(echoSettingsRepo(&saved), rosterRepo(), i18n.Default())
	in := domain.DefaultSettings()
	in.WebhookEnabled = true

	_, err := svc.Save(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, saved.WebhookActive(), "enabled without a URL never fires")
}

func TestSettingsService_Get(t *testing.T) {
	repo := &mockSettingsRepo{
		get: func(_ context.Context) (domain.Settings, error) { return domain.DefaultSettings(), nil },
	}
	svc := service.NewSettingsService(repo, rosterRepo(), i18n.Default())

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLocale, got.Locale)
}
