package domain

import "github.com/shopspring/decimal"

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = 1

const (
	DefaultLocale   = "nl_NL"
	DefaultCurrency = "EUR"
)

// DefaultMileageRate is the reimbursement per business kilometre used until
// the user configures another rate.
var DefaultMileageRate = decimal.RequireFromString("0.23")

// Settings is the application-wide configuration. Exactly one row exists;
// it is replaced as a whole on save and never deleted.
type Settings struct {
	WebhookURL       string
	WebhookEnabled   bool
	Locale           string
	Currency         string
	DefaultVehicleID *int64
	MileageRate      decimal.Decimal
}

// DefaultSettings returns the values seeded on first start.
func DefaultSettings() Settings {
	return Settings{
		Locale:      DefaultLocale,
		Currency:    DefaultCurrency,
		MileageRate: DefaultMileageRate,
	}
}

// WebhookActive reports whether trip notifications should be delivered.
func (s Settings) WebhookActive() bool {
	return s.WebhookEnabled && s.WebhookURL != ""
}
