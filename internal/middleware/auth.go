package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// TokenValidator checks a bearer token and returns its subject.
// *auth.Service satisfies it.
type TokenValidator interface {
	Validate(token string) (string, error)
}

type subjectKey struct{}

// SubjectFromContext returns the authenticated subject stored by RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok
}

// NewAuthHandler returns a middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header with 401 and the API error body.
// extract parses the header value; auth.ExtractBearer is the production one.
func NewAuthHandler(v TokenValidator, extract func(header string) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extract(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, "missing bearer token")
				return
			}
			subject, err := v.Validate(token)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey{}, subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="mileage-logbook"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
