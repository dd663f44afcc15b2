package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// sqliteTripRepo is the SQLite implementation of TripRepo.
// Dates are stored as "2006-01-02" text and money as decimal text, so a
// month is selected by its "2006-01" prefix and costs are summed in Go
// to keep them exact.
type sqliteTripRepo struct {
	db sqlDB
}

// NewSQLiteTripRepo constructs a TripRepo backed by a SQLite database.
func NewSQLiteTripRepo(db sqlDB) TripRepo {
	return &sqliteTripRepo{db: db}
}

func sqliteTripArgs(trip domain.Trip) []any {
	return []any{
		formatDate(trip.Date), trip.StartLocation, trip.EndLocation,
		trip.StartOdometer, trip.EndOdometer, trip.DistanceKM,
		trip.Purpose, string(trip.TripType), trip.LicensePlate,
		trip.ClientProject, trip.Notes,
		trip.FuelCost, trip.ParkingCost, trip.TollCost,
	}
}

func (r *sqliteTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (date, start_location, end_location, start_odometer, end_odometer,
		                   distance_km, purpose, trip_type, license_plate, client_project, notes,
		                   fuel_cost, parking_cost, toll_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + tripColumns

	result, err := scanSQLiteTrip(r.db.QueryRowContext(ctx, q, sqliteTripArgs(trip)...))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapSQLiteError(err))
	}
	return result, nil
}

func (r *sqliteTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	result, err := scanSQLiteTrip(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapSQLiteError(err))
	}
	return result, nil
}

func (r *sqliteTripRepo) ListRecent(ctx context.Context, limit int) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY date DESC, id DESC LIMIT ?`

	trips, err := r.list(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListRecent: %w", err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) ListByMonth(ctx context.Context, m domain.Month) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE substr(date, 1, 7) = ? ORDER BY date, id`

	trips, err := r.list(ctx, q, m.String())
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByMonth: %w", err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY date, id`

	trips, err := r.list(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListAll: %w", err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) list(ctx context.Context, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanSQLiteTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) MonthTotals(ctx context.Context, m domain.Month) (domain.DistanceTotals, error) {
	trips, err := r.ListByMonth(ctx, m)
	if err != nil {
		return domain.DistanceTotals{}, fmt.Errorf("repo.TripRepo.MonthTotals: %w", err)
	}
	return domain.TotalsFor(m, trips), nil
}

func (r *sqliteTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET date = ?, start_location = ?, end_location = ?, start_odometer = ?, end_odometer = ?,
		    distance_km = ?, purpose = ?, trip_type = ?, license_plate = ?, client_project = ?,
		    notes = ?, fuel_cost = ?, parking_cost = ?, toll_cost = ?
		WHERE id = ?
		RETURNING ` + tripColumns

	args := append(sqliteTripArgs(trip), trip.ID)
	result, err := scanSQLiteTrip(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapSQLiteError(err))
	}
	return result, nil
}

func (r *sqliteTripRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanSQLiteTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		tripType string
		startOdo sql.NullInt64
		endOdo   sql.NullInt64
	)

	err := s.Scan(&t.ID, sqliteDate{&t.Date}, &t.StartLocation, &t.EndLocation, &startOdo, &endOdo,
		&t.DistanceKM, &t.Purpose, &tripType, &t.LicensePlate, &t.ClientProject, &t.Notes,
		&t.FuelCost, &t.ParkingCost, &t.TollCost, sqliteTime{&t.CreatedAt})
	if err != nil {
		return domain.Trip{}, err
	}

	t.TripType = domain.TripType(tripType)
	if startOdo.Valid {
		t.StartOdometer = &startOdo.Int64
	}
	if endOdo.Valid {
		t.EndOdometer = &endOdo.Int64
	}
	return t, nil
}
