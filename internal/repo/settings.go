package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// SettingsRepo persists the singleton settings row (id = domain.SettingsID).
type SettingsRepo interface {
	// Seed inserts the default settings row if it is absent. Existing values
	// are never touched, so it is safe to call on every start.
	Seed(ctx context.Context) error

	// Get returns the settings row.
	// Returns domain.ErrNotFound if the row has not been seeded.
	Get(ctx context.Context) (domain.Settings, error)

	// Save replaces every settings column and returns the stored row.
	Save(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

// pgSettingsRepo is the Postgres implementation of SettingsRepo.
type pgSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided db connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &pgSettingsRepo{db: db}
}

const settingsColumns = `webhook_url, webhook_enabled, locale, currency, default_vehicle_id, mileage_rate`

func (r *pgSettingsRepo) Seed(ctx context.Context) error {
	const q = `
		INSERT INTO app_settings (id, locale, currency, mileage_rate)
		VALUES (@id, @locale, @currency, @mileage_rate)
		ON CONFLICT (id) DO NOTHING`

	d := domain.DefaultSettings()
	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":           domain.SettingsID,
		"locale":       d.Locale,
		"currency":     d.Currency,
		"mileage_rate": toNumeric(d.MileageRate),
	})
	if err != nil {
		return fmt.Errorf("repo.SettingsRepo.Seed: %w", err)
	}
	return nil
}

func (r *pgSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	const q = `SELECT ` + settingsColumns + ` FROM app_settings WHERE id = @id`

	s, err := scanPgSettings(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": domain.SettingsID}))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Get: %w", mapPgError(err))
	}
	return s, nil
}

// Save upserts so that a missing row is recreated rather than silently
// ignored.
func (r *pgSettingsRepo) Save(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	const q = `
		INSERT INTO app_settings (id, webhook_url, webhook_enabled, locale, currency, default_vehicle_id, mileage_rate)
		VALUES (@id, @webhook_url, @webhook_enabled, @locale, @currency, @default_vehicle_id, @mileage_rate)
		ON CONFLICT (id) DO UPDATE
		SET webhook_url        = EXCLUDED.webhook_url,
		    webhook_enabled    = EXCLUDED.webhook_enabled,
		    locale             = EXCLUDED.locale,
		    currency           = EXCLUDED.currency,
		    default_vehicle_id = EXCLUDED.default_vehicle_id,
		    mileage_rate       = EXCLUDED.mileage_rate
		RETURNING ` + settingsColumns

	args := pgx.NamedArgs{
		"id":                 domain.SettingsID,
		"webhook_url":        s.WebhookURL,
		"webhook_enabled":    s.WebhookEnabled,
		"locale":             s.Locale,
		"currency":           s.Currency,
		"default_vehicle_id": s.DefaultVehicleID,
		"mileage_rate":       toNumeric(s.MileageRate),
	}

	saved, err := scanPgSettings(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Save: %w", mapPgError(err))
	}
	return saved, nil
}

func scanPgSettings(row scanner) (domain.Settings, error) {
	var (
		s    domain.Settings
		rate pgtype.Numeric
	)
	err := row.Scan(&s.WebhookURL, &s.WebhookEnabled, &s.Locale, &s.Currency, &s.DefaultVehicleID, &rate)
	if err != nil {
		return domain.Settings{}, err
	}
	s.MileageRate = fromNumeric(rate)
	return s, nil
}
