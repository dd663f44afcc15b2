package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mileage-logbook/internal/auth"
	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/handler"
	"github.com/pkordes/mileage-logbook/internal/i18n"
)

// Test doubles for the handler's consumer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	save       func(ctx context.Context, form domain.TripForm, editingID *int64) (domain.Trip, error)
	get        func(ctx context.Context, id int64) (domain.Trip, error)
	listRecent func(ctx context.Context) ([]domain.Trip, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockTripServicer) Save(ctx context.Context, f domain.TripForm, id *int64) (domain.Trip, error) {
	return m.save(ctx, f, id)
}
func (m *mockTripServicer) Get(ctx context.Context, id int64) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripServicer) ListRecent(ctx context.Context) ([]domain.Trip, error) {
	return m.listRecent(ctx)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockSummaryServicer struct {
	monthly func(ctx context.Context, month domain.Month) (domain.MonthlySummary, error)
	current func(ctx context.Context) (domain.MonthlySummary, error)
}

func (m *mockSummaryServicer) Monthly(ctx context.Context, month domain.Month) (domain.MonthlySummary, error) {
	return m.monthly(ctx, month)
}
func (m *mockSummaryServicer) Current(ctx context.Context) (domain.MonthlySummary, error) {
	return m.current(ctx)
}

type mockVehicleServicer struct {
	add        func(ctx context.Context, in domain.VehicleInput) (domain.Vehicle, error)
	listActive func(ctx context.Context) ([]domain.Vehicle, error)
	deactivate func(ctx context.Context, id int64) error
	def        func(ctx context.Context) (domain.Vehicle, bool, error)
}

func (m *mockVehicleServicer) Add(ctx context.Context, in domain.VehicleInput) (domain.Vehicle, error) {
	return m.add(ctx, in)
}
func (m *mockVehicleServicer) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listActive(ctx)
}
func (m *mockVehicleServicer) Deactivate(ctx context.Context, id int64) error {
	return m.deactivate(ctx, id)
}
func (m *mockVehicleServicer) Default(ctx context.Context) (domain.Vehicle, bool, error) {
	return m.def(ctx)
}

type mockSettingsServicer struct {
	get  func(ctx context.Context) (domain.Settings, error)
	save func(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

func (m *mockSettingsServicer) Get(ctx context.Context) (domain.Settings, error) {
	return m.get(ctx)
}
func (m *mockSettingsServicer) Save(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	return m.save(ctx, s)
}

type mockExportServicer struct {
	trips func(ctx context.Context, month *domain.Month) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Trips(ctx context.Context, month *domain.Month) ([]domain.ExportRow, error) {
	return m.trips(ctx, month)
}

type mockAuthenticator struct {
	login func(username, password string) (auth.Token, error)
}

func (m *mockAuthenticator) Login(username, password string) (auth.Token, error) {
	return m.login(username, password)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.SummaryServicer  = (*mockSummaryServicer)(nil)
	_ handler.VehicleServicer  = (*mockVehicleServicer)(nil)
	_ handler.SettingsServicer = (*mockSettingsServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
	_ handler.Authenticator    = (*mockAuthenticator)(nil)
	_ handler.MessageCatalog   = (*i18n.Catalog)(nil)
)

// ---- helpers ---------------------------------------------------------------

func noAuth(next http.Handler) http.Handler { return next }

// newHTTPHandler wires a Server with the given deps into its router, with
// authentication disabled. The real catalog and a discarding logger are
// filled in when absent.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Messages == nil {
		d.Messages = i18n.Default()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(d).Routes(noAuth)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func ptr[T any](v T) *T { return &v }

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:            7,
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartLocation: "Utrecht",
		EndLocation:   "Amsterdam",
		StartOdometer: ptr(int64(1000)),
		EndOdometer:   ptr(int64(1050)),
		DistanceKM:    50,
		Purpose:       "Client meeting",
		TripType:      domain.TripTypeBusiness,
		LicensePlate:  "AB-123-C",
		FuelCost:      decimal.RequireFromString("12.5"),
		ParkingCost:   decimal.RequireFromString("3.2"),
		TollCost:      decimal.Zero,
		CreatedAt:     time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}
