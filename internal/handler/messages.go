package handler

import "net/http"

// Messages is the body of GET /messages.
type Messages struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

// GetMessages handles GET /messages.
// ?locale= selects the table; without it the stored settings locale is used.
// Unknown locales resolve to the closest supported one.
func (s *Server) GetMessages(w http.ResponseWriter, r *http.Request) {
	locale, err := queryString(r, "locale")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	if locale == "" {
		locale = s.storedLocale(r)
	}

	resolved, table := s.messages.Table(locale)
	writeJSON(w, http.StatusOK, Messages{Locale: resolved, Messages: table})
}

// storedLocale returns the configured locale, or "" when settings cannot be
// read; the catalog then falls back to its default table.
func (s *Server) storedLocale(r *http.Request) string {
	if s.settings == nil {
		return ""
	}
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "read settings for locale", "error", err)
		return ""
	}
	return settings.Locale
}
