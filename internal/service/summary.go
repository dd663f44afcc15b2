package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
)

// SummaryService computes the monthly distance and reimbursement overview.
type SummaryService struct {
	trips    repo.TripRepo
	settings repo.SettingsRepo
	now      func() time.Time
}

// NewSummaryService constructs a SummaryService. now supplies the clock for
// Current; nil means time.Now.
func NewSummaryService(trips repo.TripRepo, settings repo.SettingsRepo, now func() time.Time) *SummaryService {
	if now == nil {
		now = time.Now
	}
	return &SummaryService{trips: trips, settings: settings, now: now}
}

// Compute summarises month at the given rate per business kilometre.
// A month without trips yields zero totals.
func (s *SummaryService) Compute(ctx context.Context, month domain.Month, rate decimal.Decimal) (domain.MonthlySummary, error) {
	totals, err := s.trips.MonthTotals(ctx, month)
	if err != nil {
		return domain.MonthlySummary{}, fmt.Errorf("service.SummaryService.Compute: %w", err)
	}
	return domain.NewMonthlySummary(month, totals, rate), nil
}

// Monthly summarises month at the configured mileage rate.
func (s *SummaryService) Monthly(ctx context.Context, month domain.Month) (domain.MonthlySummary, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.MonthlySummary{}, fmt.Errorf("service.SummaryService.Monthly: %w", err)
	}
	return s.Compute(ctx, month, settings.MileageRate)
}

// Current summarises the calendar month containing the current time.
func (s *SummaryService) Current(ctx context.Context) (domain.MonthlySummary, error) {
	return s.Monthly(ctx, domain.MonthOf(s.now()))
}
