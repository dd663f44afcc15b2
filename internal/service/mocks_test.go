package service_test

import (
	"context"
	"sync"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
	"github.com/pkordes/mileage-logbook/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id int64) (domain.Trip, error)
	listRecent  func(ctx context.Context, limit int) ([]domain.Trip, error)
	listByMonth func(ctx context.Context, m domain.Month) ([]domain.Trip, error)
	listAll     func(ctx context.Context) ([]domain.Trip, error)
	monthTotals func(ctx context.Context, m domain.Month) (domain.DistanceTotals, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListRecent(ctx context.Context, limit int) ([]domain.Trip, error) {
	return m.listRecent(ctx, limit)
}
func (m *mockTripRepo) ListByMonth(ctx context.Context, month domain.Month) ([]domain.Trip, error) {
	return m.listByMonth(ctx, month)
}
func (m *mockTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	return m.listAll(ctx)
}
func (m *mockTripRepo) MonthTotals(ctx context.Context, month domain.Month) (domain.DistanceTotals, error) {
	return m.monthTotals(ctx, month)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockVehicleRepo struct {
	create     func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	getByID    func(ctx context.Context, id int64) (domain.Vehicle, error)
	listActive func(ctx context.Context) ([]domain.Vehicle, error)
	deactivate func(ctx context.Context, id int64) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, v)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id int64) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleRepo) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listActive(ctx)
}
func (m *mockVehicleRepo) Deactivate(ctx context.Context, id int64) error {
	return m.deactivate(ctx, id)
}

type mockSettingsRepo struct {
	seed func(ctx context.Context) error
	get  func(ctx context.Context) (domain.Settings, error)
	save func(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

func (m *mockSettingsRepo) Seed(ctx context.Context) error {
	return m.seed(ctx)
}
func (m *mockSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	return m.get(ctx)
}
func (m *mockSettingsRepo) Save(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	return m.save(ctx, s)
}

// recordingNotifier remembers every Notify call.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	trip     domain.Trip
	settings domain.Settings
}

func (n *recordingNotifier) Notify(_ context.Context, trip domain.Trip, settings domain.Settings) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{trip: trip, settings: settings})
}

func (n *recordingNotifier) Calls() []notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifyCall(nil), n.calls...)
}

// compile-time checks.
var (
	_ repo.TripRepo     = (*mockTripRepo)(nil)
	_ repo.VehicleRepo  = (*mockVehicleRepo)(nil)
	_ repo.SettingsRepo = (*mockSettingsRepo)(nil)
	_ service.Notifier  = (*recordingNotifier)(nil)
)

func ptr[T any](v T) *T { return &v }
