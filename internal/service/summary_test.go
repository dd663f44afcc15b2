package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/service"
	"github.com/pkordes/mileage-logbook/testutil"
)

func TestSummaryService_Compute(t *testing.T) {
	march := domain.Month{Year: 2024, Month: time.March}
	trips := &mockTripRepo{
		monthTotals: func(_ context.Context, m domain.Month) (domain.DistanceTotals, error) {
			assert.Equal(t, march, m)
			return domain.DistanceTotals{TotalKM: 35, BusinessKM: 15, TotalCost: decimal.Zero}, nil
		},
	}
	svc := service.NewSummaryService(trips, &mockSettingsRepo{}, nil)

	got, err := svc.Compute(context.Background(), march, decimal.RequireFromString("0.23"))

	require.NoError(t, err)
	assert.Equal(t, int64(35), got.TotalKM)
	assert.Equal(t, int64(15), got.BusinessKM)
	assert.True(t, got.Reimbursement.Equal(decimal.RequireFromString("3.45")), "reimbursement %s", got.Reimbursement)
}

func TestSummaryService_Monthly_UsesConfiguredRate(t *testing.T) {
	trips := &mockTripRepo{
		monthTotals: func(_ context.Context, _ domain.Month) (domain.DistanceTotals, error) {
			return domain.DistanceTotals{TotalKM: 100, BusinessKM: 100}, nil
		},
	}
	settings := &mockSettingsRepo{
		get: func(_ context.Context) (domain.Settings, error) {
			s := domain.DefaultSettings()
			s.MileageRate = decimal.RequireFromString("0.19")
			return s, nil
		},
	}
	svc := service.NewSummaryService(trips, settings, nil)

	got, err := svc.Monthly(context.Background(), domain.Month{Year: 2024, Month: time.May})

	require.NoError(t, err)
	assert.True(t, got.Reimbursement.Equal(decimal.NewFromInt(19)))
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.19")))
}

func TestSummaryService_Current_UsesClock(t *testing.T) {
	var asked domain.Month
	trips := &mockTripRepo{
		monthTotals: func(_ context.Context, m domain.Month) (domain.DistanceTotals, error) {
			asked = m
			return domain.DistanceTotals{}, nil
		},
	}
	settings := &mockSettingsRepo{
		get: func(_ context.Context) (domain.Settings, error) { return domain.DefaultSettings(), nil },
	}
	clock := func() time.Time { return time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC) }
	svc := service.NewSummaryService(trips, settings, clock)

	got, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.Month{Year: 2025, Month: time.January}, asked)
	assert.Equal(t, "2025-01", got.Month.String())
}

func TestSummaryService_Monthly_SettingsError(t *testing.T) {
	settings := &mockSettingsRepo{
		get: func(_ context.Context) (domain.Settings, error) { return domain.Settings{}, errors.New("boom") },
	}
	svc := service.NewSummaryService(&mockTripRepo{}, settings, nil)

	_, err := svc.Monthly(context.Background(), domain.Month{Year: 2024, Month: time.March})

	assert.Error(t, err)
}

// The 10 km business, 20 km private, 5 km business month from the
// reference scenario, persisted and summarised through SQLite.
func TestSummaryService_Compute_SQLite(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	trips := service.NewTripService(store.Trips, store.Vehicles, store.Settings, &recordingNotifier{}, testutil.DiscardLogger())
	summary := service.NewSummaryService(store.Trips, store.Settings, nil)
	ctx := context.Background()

	for _, tc := range []struct{ date, km, tripType string }{
		{"2024-03-01", "10", "business"},
		{"2024-03-12", "20", "private"},
		{"2024-03-31", "5", "business"},
		{"2024-04-01", "500", "business"},
	} {
		form := validForm()
		form.Date = tc.date
		form.Distance = tc.km
		form.TripType = tc.tripType
		_, err := trips.Save(ctx, form, nil)
		require.NoError(t, err)
	}

	got, err := summary.Compute(ctx, domain.Month{Year: 2024, Month: time.March}, decimal.RequireFromString("0.23"))

	require.NoError(t, err)
	assert.Equal(t, int64(35), got.TotalKM)
	assert.Equal(t, int64(15), got.BusinessKM)
	assert.Equal(t, "3.45", got.Reimbursement.String())

	empty, err := summary.Monthly(ctx, domain.Month{Year: 2023, Month: time.March})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalKM)
	assert.True(t, empty.Reimbursement.IsZero())
}
