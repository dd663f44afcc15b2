package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// sqliteSettingsRepo is the SQLite implementation of SettingsRepo.
// mileage_rate is stored as decimal text.
type sqliteSettingsRepo struct {
	db sqlDB
}

// NewSQLiteSettingsRepo constructs a SettingsRepo backed by a SQLite database.
func NewSQLiteSettingsRepo(db sqlDB) SettingsRepo {
	return &sqliteSettingsRepo{db: db}
}

func (r *sqliteSettingsRepo) Seed(ctx context.Context) error {
	const q = `
		INSERT OR IGNORE INTO app_settings (id, locale, currency, mileage_rate)
		VALUES (?, ?, ?, ?)`

	d := domain.DefaultSettings()
	if _, err := r.db.ExecContext(ctx, q, domain.SettingsID, d.Locale, d.Currency, d.MileageRate); err != nil {
		return fmt.Errorf("repo.SettingsRepo.Seed: %w", err)
	}
	return nil
}

func (r *sqliteSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	const q = `SELECT ` + settingsColumns + ` FROM app_settings WHERE id = ?`

	s, err := scanSQLiteSettings(r.db.QueryRowContext(ctx, q, domain.SettingsID))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Get: %w", mapSQLiteError(err))
	}
	return s, nil
}

func (r *sqliteSettingsRepo) Save(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	const q = `
		INSERT INTO app_settings (id, webhook_url, webhook_enabled, locale, currency, default_vehicle_id, mileage_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET webhook_url        = excluded.webhook_url,
		    webhook_enabled    = excluded.webhook_enabled,
		    locale             = excluded.locale,
		    currency           = excluded.currency,
		    default_vehicle_id = excluded.default_vehicle_id,
		    mileage_rate       = excluded.mileage_rate
		RETURNING ` + settingsColumns

	saved, err := scanSQLiteSettings(r.db.QueryRowContext(ctx, q,
		domain.SettingsID, s.WebhookURL, s.WebhookEnabled, s.Locale, s.Currency, s.DefaultVehicleID, s.MileageRate))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Save: %w", mapSQLiteError(err))
	}
	return saved, nil
}

func scanSQLiteSettings(row scanner) (domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(&s.WebhookURL, &s.WebhookEnabled, &s.Locale, &s.Currency, &s.DefaultVehicleID, &s.MileageRate)
	if err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}
