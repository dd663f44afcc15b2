package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Month identifies a calendar month. The zero value is not a valid month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}
	return MonthOf(t), nil
}

// String formats the month as "YYYY-MM", the prefix shared by every trip
// date inside it.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns the first day of the month at UTC midnight.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month (exclusive bound).
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Contains reports whether the calendar date of t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DistanceTotals holds the raw aggregates over one month of trips.
type DistanceTotals struct {
	TotalKM    int64
	BusinessKM int64
	TotalCost  decimal.Decimal
}

// Add folds a single trip into the totals.
func (d DistanceTotals) Add(t Trip) DistanceTotals {
	d.TotalKM += t.DistanceKM
	if t.IsBusiness() {
		d.BusinessKM += t.DistanceKM
	}
	d.TotalCost = d.TotalCost.Add(t.TotalCost())
	return d
}

// TotalsFor aggregates the trips dated inside m. Trips outside the month are
// ignored.
func TotalsFor(m Month, trips []Trip) DistanceTotals {
	totals := DistanceTotals{TotalCost: decimal.Zero}
	for _, t := range trips {
		if m.Contains(t.Date) {
			totals = totals.Add(t)
		}
	}
	return totals
}

// MonthlySummary is the rolling overview shown next to the trip list.
type MonthlySummary struct {
	Month         Month
	TotalKM       int64
	BusinessKM    int64
	Rate          decimal.Decimal
	Reimbursement decimal.Decimal // BusinessKM * Rate, unrounded
	TotalCost     decimal.Decimal
}

// NewMonthlySummary derives the summary for month from its totals and the
// reimbursement rate. Rounding is left to presentation.
func NewMonthlySummary(month Month, totals DistanceTotals, rate decimal.Decimal) MonthlySummary {
	return MonthlySummary{
		Month:         month,
		TotalKM:       totals.TotalKM,
		BusinessKM:    totals.BusinessKM,
		Rate:          rate,
		Reimbursement: decimal.NewFromInt(totals.BusinessKM).Mul(rate),
		TotalCost:     totals.TotalCost,
	}
}
