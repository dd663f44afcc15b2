// Package service contains the business logic of the mileage logbook.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
)

// Notifier announces a saved trip to the outside world.
// Implementations must return immediately; delivery happens in the background
// and its failures never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, trip domain.Trip, settings domain.Settings)
}

// TripService implements business logic for Trip operations.
// It reads vehicles for the plate snapshot and settings for the notification.
type TripService struct {
	trips    repo.TripRepo
	vehicles repo.VehicleRepo
	settings repo.SettingsRepo
	notifier Notifier
	logger   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, vehicles repo.VehicleRepo, settings repo.SettingsRepo,
	notifier Notifier, logger *slog.Logger) *TripService {
	return &TripService{
		trips:    trips,
		vehicles: vehicles,
		settings: settings,
		notifier: notifier,
		logger:   logger,
	}
}

// Save creates a trip from form, or overwrites trip editingID when it is set.
// Returns domain.ErrValidation when a required field is missing and
// domain.ErrNotFound when editingID names no trip. On success the notifier is
// triggered with the persisted trip.
func (s *TripService) Save(ctx context.Context, form domain.TripForm, editingID *int64) (domain.Trip, error) {
	trip, err := tripFromForm(form)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}

	plate, err := s.plateFor(ctx, form.VehicleID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}
	trip.LicensePlate = plate

	var saved domain.Trip
	if editingID != nil {
		trip.ID = *editingID
		saved, err = s.trips.Update(ctx, trip)
	} else {
		saved, err = s.trips.Create(ctx, trip)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}

	s.notify(ctx, saved)
	return saved, nil
}

// notify hands the trip to the notifier. A settings read failure only costs
// the notification, never the save.
func (s *TripService) notify(ctx context.Context, trip domain.Trip) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "trip notification skipped", "trip_id", trip.ID, "error", err)
		return
	}
	s.notifier.Notify(ctx, trip, settings)
}

// plateFor returns the plate of the selected vehicle when it is active, and
// an empty plate when no vehicle (or an unknown or inactive one) is selected.
func (s *TripService) plateFor(ctx context.Context, vehicleID *int64) (string, error) {
	if vehicleID == nil {
		return "", nil
	}
	v, err := s.vehicles.GetByID(ctx, *vehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !v.Active {
		return "", nil
	}
	return v.LicensePlate, nil
}

// Get returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) Get(ctx context.Context, id int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// ListRecent returns the newest trips, at most domain.RecentTripsLimit.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListRecent(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.ListRecent(ctx, domain.RecentTripsLimit)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListRecent: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Delete removes a trip. Deleting a trip that does not exist is not an error.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	err := s.trips.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// tripFromForm validates the required fields and applies the lenient parsing
// rules to the rest. The plate is left for the caller.
func tripFromForm(form domain.TripForm) (domain.Trip, error) {
	if strings.TrimSpace(form.Date) == "" {
		return domain.Trip{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	startLocation := strings.TrimSpace(form.StartLocation)
	if startLocation == "" {
		return domain.Trip{}, fmt.Errorf("%w: start_location is required", domain.ErrValidation)
	}
	endLocation := strings.TrimSpace(form.EndLocation)
	if endLocation == "" {
		return domain.Trip{}, fmt.Errorf("%w: end_location is required", domain.ErrValidation)
	}
	date, err := domain.ParseDate(form.Date)
	if err != nil {
		return domain.Trip{}, err
	}
	tripType, err := domain.ParseTripType(form.TripType)
	if err != nil {
		return domain.Trip{}, err
	}

	km, start, end := domain.ResolveDistance(form.Distance, form.StartOdometer, form.EndOdometer)

	return domain.Trip{
		Date:          date,
		StartLocation: startLocation,
		EndLocation:   endLocation,
		StartOdometer: start,
		EndOdometer:   end,
		DistanceKM:    km,
		Purpose:       strings.TrimSpace(form.Purpose),
		TripType:      tripType,
		ClientProject: strings.TrimSpace(form.ClientProject),
		Notes:         form.Notes,
		FuelCost:      domain.ParseAmount(form.FuelCost),
		ParkingCost:   domain.ParseAmount(form.ParkingCost),
		TollCost:      domain.ParseAmount(form.TollCost),
	}, nil
}
