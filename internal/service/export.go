package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
)

// ExportService assembles a flat export of the logbook.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Trips returns one ExportRow per trip, oldest first. When month is non-nil
// only the trips dated inside it are exported.
func (s *ExportService) Trips(ctx context.Context, month *domain.Month) ([]domain.ExportRow, error) {
	var (
		trips []domain.Trip
		err   error
	)
	if month != nil {
		trips, err = s.trips.ListByMonth(ctx, *month)
	} else {
		trips, err = s.trips.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Trips: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, toExportRow(t))
	}
	return rows, nil
}

func toExportRow(t domain.Trip) domain.ExportRow {
	return domain.ExportRow{
		TripID:        t.ID,
		Date:          t.Date.Format(domain.DateLayout),
		StartLocation: t.StartLocation,
		EndLocation:   t.EndLocation,
		StartOdometer: formatOptionalInt(t.StartOdometer),
		EndOdometer:   formatOptionalInt(t.EndOdometer),
		DistanceKM:    t.DistanceKM,
		TripType:      t.TripType,
		Purpose:       t.Purpose,
		LicensePlate:  t.LicensePlate,
		ClientProject: t.ClientProject,
		Notes:         t.Notes,
		FuelCost:      t.FuelCost.StringFixed(2),
		ParkingCost:   t.ParkingCost.StringFixed(2),
		TollCost:      t.TollCost.StringFixed(2),
	}
}

// formatOptionalInt returns the decimal representation of n, or "" if n is nil.
func formatOptionalInt(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
