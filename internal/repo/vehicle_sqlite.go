package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// sqliteVehicleRepo is the SQLite implementation of VehicleRepo.
type sqliteVehicleRepo struct {
	db sqlDB
}

// NewSQLiteVehicleRepo constructs a VehicleRepo backed by a SQLite database.
func NewSQLiteVehicleRepo(db sqlDB) VehicleRepo {
	return &sqliteVehicleRepo{db: db}
}

func (r *sqliteVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (license_plate, brand, model, fuel_type, lease_company)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + vehicleColumns

	result, err := scanSQLiteVehicle(r.db.QueryRowContext(ctx, q,
		v.LicensePlate, v.Brand, v.Model, string(v.FuelType), v.LeaseCompany))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", mapSQLiteError(err))
	}
	return result, nil
}

func (r *sqliteVehicleRepo) GetByID(ctx context.Context, id int64) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ?`

	result, err := scanSQLiteVehicle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", mapSQLiteError(err))
	}
	return result, nil
}

func (r *sqliteVehicleRepo) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE active = 1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListActive: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		v, err := scanSQLiteVehicle(rows)
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

func (r *sqliteVehicleRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func scanSQLiteVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v        domain.Vehicle
		fuelType string
	)
	err := s.Scan(&v.ID, &v.LicensePlate, &v.Brand, &v.Model, &fuelType, &v.LeaseCompany, &v.Active,
		sqliteTime{&v.CreatedAt})
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.FuelType = domain.FuelType(fuelType)
	return v, nil
}
