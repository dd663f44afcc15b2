package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/repo"
)

// VehicleService manages the vehicle roster.
type VehicleService struct {
	vehicles repo.VehicleRepo
	settings repo.SettingsRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repos.
func NewVehicleService(vehicles repo.VehicleRepo, settings repo.SettingsRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles, settings: settings}
}

// Add registers a vehicle. The plate is trimmed and upper-cased.
// Returns domain.ErrValidation when the plate or brand is empty or the fuel
// type is unknown, and domain.ErrConflict when the plate is already taken.
func (s *VehicleService) Add(ctx context.Context, in domain.VehicleInput) (domain.Vehicle, error) {
	v, err := vehicleFromInput(in)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}
	created, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}
	return created, nil
}

// ListActive returns the active vehicles ordered by id.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.ListActive: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Deactivate hides a vehicle from the roster. Trips keep their plate
// snapshot. Deactivating an unknown vehicle is not an error.
func (s *VehicleService) Deactivate(ctx context.Context, id int64) error {
	err := s.vehicles.Deactivate(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.VehicleService.Deactivate: %w", err)
	}
	return nil
}

// Default resolves the vehicle the trip form should preselect.
// ok is false when there are no active vehicles.
func (s *VehicleService) Default(ctx context.Context) (v domain.Vehicle, ok bool, err error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Vehicle{}, false, fmt.Errorf("service.VehicleService.Default: %w", err)
	}
	active, err := s.vehicles.ListActive(ctx)
	if err != nil {
		return domain.Vehicle{}, false, fmt.Errorf("service.VehicleService.Default: %w", err)
	}
	v, ok = domain.ResolveDefaultVehicle(settings, active)
	return v, ok, nil
}

func vehicleFromInput(in domain.VehicleInput) (domain.Vehicle, error) {
	plate := domain.NormalizePlate(in.LicensePlate)
	if plate == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: license_plate is required", domain.ErrValidation)
	}
	brand := strings.TrimSpace(in.Brand)
	if brand == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: brand is required", domain.ErrValidation)
	}
	fuel, err := domain.ParseFuelType(in.FuelType)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return domain.Vehicle{
		LicensePlate: plate,
		Brand:        brand,
		Model:        strings.TrimSpace(in.Model),
		FuelType:     fuel,
		LeaseCompany: strings.TrimSpace(in.LeaseCompany),
		Active:       true,
	}, nil
}
