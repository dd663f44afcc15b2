package handler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// Settings is the wire form of the application settings, used for both
// GET and PUT /settings. PUT replaces every field.
type Settings struct {
	WebhookURL       string     `json:"webhook_url"`
	WebhookEnabled   bool       `json:"webhook_enabled"`
	Locale           string     `json:"locale"`
	Currency         string     `json:"currency"`
	DefaultVehicleID *int64     `json:"default_vehicle_id"`
	MileageRate      flexString `json:"mileage_rate"`
}

// GetSettings handles GET /settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "settings not found")
		return
	}
	writeJSON(w, http.StatusOK, settingsToResponse(settings))
}

// SaveSettings handles PUT /settings.
func (s *Server) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var body Settings
	if !decodeJSON(w, r, &body) {
		return
	}

	rate, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(string(body.MileageRate)), ",", "."))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "mileage_rate must be a decimal number")
		return
	}

	saved, err := s.settings.Save(r.Context(), domain.Settings{
		WebhookURL:       body.WebhookURL,
		WebhookEnabled:   body.WebhookEnabled,
		Locale:           body.Locale,
		Currency:         body.Currency,
		DefaultVehicleID: body.DefaultVehicleID,
		MileageRate:      rate,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "settings not found")
		return
	}
	writeJSON(w, http.StatusOK, settingsToResponse(saved))
}

func settingsToResponse(s domain.Settings) Settings {
	return Settings{
		WebhookURL:       s.WebhookURL,
		WebhookEnabled:   s.WebhookEnabled,
		Locale:           s.Locale,
		Currency:         s.Currency,
		DefaultVehicleID: s.DefaultVehicleID,
		MileageRate:      flexString(s.MileageRate.String()),
	}
}
