package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// VehicleRepo defines the persistence operations for the vehicle roster.
// Vehicles are never deleted; Deactivate is the only way to retire one.
type VehicleRepo interface {
	// Create inserts a vehicle. Returns domain.ErrConflict when the plate is
	// already registered.
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// GetByID retrieves a vehicle regardless of its active flag.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Vehicle, error)

	// ListActive returns the active vehicles ordered by id.
	ListActive(ctx context.Context) ([]domain.Vehicle, error)

	// Deactivate clears the active flag.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	Deactivate(ctx context.Context, id int64) error
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, license_plate, brand, model, fuel_type, lease_company, active, created_at`

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (license_plate, brand, model, fuel_type, lease_company)
		VALUES (@license_plate, @brand, @model, @fuel_type, @lease_company)
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"license_plate": v.LicensePlate,
		"brand":         v.Brand,
		"model":         v.Model,
		"fuel_type":     string(v.FuelType),
		"lease_company": v.LeaseCompany,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id int64) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE active ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListActive: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.ListActive: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListActive: rows: %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepo) Deactivate(ctx context.Context, id int64) error {
	const q = `UPDATE vehicles SET active = FALSE WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

// scanVehicle maps a single vehicles row into a domain.Vehicle.
func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v        domain.Vehicle
		fuelType string
	)
	err := s.Scan(&v.ID, &v.LicensePlate, &v.Brand, &v.Model, &fuelType, &v.LeaseCompany, &v.Active, &v.CreatedAt)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.FuelType = domain.FuelType(fuelType)
	return v, nil
}
