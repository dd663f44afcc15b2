package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/currency"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
)

// LocaleChecker reports whether a locale has a message table.
// *i18n.Catalog satisfies it.
type LocaleChecker interface {
	Supported(locale string) bool
}

// SettingsService reads and replaces the application settings.
type SettingsService struct {
	settings repo.SettingsRepo
	vehicles repo.VehicleRepo
	locales  LocaleChecker
}

// NewSettingsService constructs a SettingsService backed by the provided repos.
func NewSettingsService(settings repo.SettingsRepo, vehicles repo.VehicleRepo, locales LocaleChecker) *SettingsService {
	return &SettingsService{settings: settings, vehicles: vehicles, locales: locales}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	return settings, nil
}

// Save validates in and replaces every stored setting with it.
// Returns domain.ErrValidation when a value is out of range or the default
// vehicle is not an active vehicle.
func (s *SettingsService) Save(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	normalized, err := s.validate(ctx, in)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Save: %w", err)
	}
	saved, err := s.settings.Save(ctx, normalized)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Save: %w", err)
	}
	return saved, nil
}

// validate checks in and returns it with the currency upper-cased and the
// webhook URL trimmed.
func (s *SettingsService) validate(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	if !s.locales.Supported(in.Locale) {
		return domain.Settings{}, fmt.Errorf("%w: unsupported locale %q", domain.ErrValidation, in.Locale)
	}

	unit, err := currency.ParseISO(strings.TrimSpace(in.Currency))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: currency must be an ISO 4217 code", domain.ErrValidation)
	}
	in.Currency = unit.String()

	if in.MileageRate.IsNegative() {
		return domain.Settings{}, fmt.Errorf("%w: mileage_rate must not be negative", domain.ErrValidation)
	}

	in.WebhookURL = strings.TrimSpace(in.WebhookURL)
	if in.WebhookURL != "" {
		u, err := url.Parse(in.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return domain.Settings{}, fmt.Errorf("%w: webhook_url must be an http(s) URL", domain.ErrValidation)
		}
	}

	if in.DefaultVehicleID != nil {
		v, err := s.vehicles.GetByID(ctx, *in.DefaultVehicleID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && !v.Active) {
			return domain.Settings{}, fmt.Errorf("%w: default_vehicle_id must name an active vehicle", domain.ErrValidation)
		}
		if err != nil {
			return domain.Settings{}, err
		}
	}
	return in, nil
}
