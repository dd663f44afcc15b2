// Package handler implements the HTTP handlers for the mileage logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/mileage-logbook/internal/auth"
	"github.com/pkordes/mileage-logbook/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Save(ctx context.Context, form domain.TripForm, editingID *int64) (domain.Trip, error)
	Get(ctx context.Context, id int64) (domain.Trip, error)
	ListRecent(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

// SummaryServicer produces monthly summaries.
type SummaryServicer interface {
	Monthly(ctx context.Context, month domain.Month) (domain.MonthlySummary, error)
	Current(ctx context.Context) (domain.MonthlySummary, error)
}

// VehicleServicer manages the vehicle roster.
type VehicleServicer interface {
	Add(ctx context.Context, in domain.VehicleInput) (domain.Vehicle, error)
	ListActive(ctx context.Context) ([]domain.Vehicle, error)
	Deactivate(ctx context.Context, id int64) error
	Default(ctx context.Context) (domain.Vehicle, bool, error)
}

// SettingsServicer reads and replaces the application settings.
type SettingsServicer interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

// ExportServicer produces flat trip rows for download.
type ExportServicer interface {
	Trips(ctx context.Context, month *domain.Month) ([]domain.ExportRow, error)
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(username, password string) (auth.Token, error)
}

// MessageCatalog resolves localized UI strings.
type MessageCatalog interface {
	Lookup(locale, key string) string
	Table(locale string) (string, map[string]string)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups the collaborators of Server. Nil fields are allowed in tests
// that only exercise a subset of the routes.
type Deps struct {
	Trips    TripServicer
	Summary  SummaryServicer
	Vehicles VehicleServicer
	Settings SettingsServicer
	Export   ExportServicer
	Auth     Authenticator
	Messages MessageCatalog
	Store    Pinger
	OpenAPI  []byte
	Logger   *slog.Logger
}

// Server serves every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	summary  SummaryServicer
	vehicles VehicleServicer
	settings SettingsServicer
	export   ExportServicer
	auth     Authenticator
	messages MessageCatalog
	store    Pinger
	openAPI  []byte
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		trips:    d.Trips,
		summary:  d.Summary,
		vehicles: d.Vehicles,
		settings: d.Settings,
		export:   d.Export,
		auth:     d.Auth,
		messages: d.Messages,
		store:    d.Store,
		openAPI:  d.OpenAPI,
		logger:   logger,
	}
}

// Routes returns the API router. requireAuth guards every domain route;
// /healthz, /openapi.yaml and /auth/login stay public.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
		})
		r.Get("/summary", s.GetSummary)
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", s.ListVehicles)
			r.Post("/", s.AddVehicle)
			r.Get("/default", s.GetDefaultVehicle)
			r.Delete("/{id}", s.DeactivateVehicle)
		})
		r.Get("/settings", s.GetSettings)
		r.Put("/settings", s.SaveSettings)
		r.Get("/export", s.GetExport)
		r.Get("/messages", s.GetMessages)
	})
	return r
}
