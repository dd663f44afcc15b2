package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/pkordes/mileage-logbook/internal/auth"
	"github.com/pkordes/mileage-logbook/internal/i18n"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login.
// Rejected credentials answer 401 with the localized invalid-login message.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	token, err := s.auth.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			msg := s.messages.Lookup(s.storedLocale(r), i18n.KeyInvalidLogin)
			writeError(w, http.StatusUnauthorized, "unauthorized", msg)
			return
		}
		s.writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token.Value,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
	})
}
