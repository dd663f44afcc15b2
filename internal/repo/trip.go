package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete implementations,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with the
	// store-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// ListRecent returns at most limit trips ordered by date descending, then
	// id descending so the newest entry of a day comes first.
	ListRecent(ctx context.Context, limit int) ([]domain.Trip, error)

	// ListByMonth returns every trip dated inside m, oldest first.
	ListByMonth(ctx context.Context, m domain.Month) ([]domain.Trip, error)

	// ListAll returns every trip, oldest first.
	ListAll(ctx context.Context) ([]domain.Trip, error)

	// MonthTotals aggregates distance and costs over the trips dated inside m.
	MonthTotals(ctx context.Context, m domain.Month) (domain.DistanceTotals, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. id and created_at are never changed.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, date, start_location, end_location, start_odometer, end_odometer,
		distance_km, purpose, trip_type, license_plate, client_project, notes,
		fuel_cost, parking_cost, toll_cost, created_at`

// tripArgs maps the writable trip fields onto named query arguments.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"date":           trip.Date,
		"start_location": trip.StartLocation,
		"end_location":   trip.EndLocation,
		"start_odometer": trip.StartOdometer, // nil becomes NULL
		"end_odometer":   trip.EndOdometer,
		"distance_km":    trip.DistanceKM,
		"purpose":        trip.Purpose,
		"trip_type":      string(trip.TripType),
		"license_plate":  trip.LicensePlate,
		"client_project": trip.ClientProject,
		"notes":          trip.Notes,
		"fuel_cost":      toNumeric(trip.FuelCost),
		"parking_cost":   toNumeric(trip.ParkingCost),
		"toll_cost":      toNumeric(trip.TollCost),
	}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (date, start_location, end_location, start_odometer, end_odometer,
		                   distance_km, purpose, trip_type, license_plate, client_project, notes,
		                   fuel_cost, parking_cost, toll_cost)
		VALUES (@date, @start_location, @end_location, @start_odometer, @end_odometer,
		        @distance_km, @purpose, @trip_type, @license_plate, @client_project, @notes,
		        @fuel_cost, @parking_cost, @toll_cost)
		RETURNING ` + tripColumns

	result, err := scanPgTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanPgTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

// ListRecent returns the newest trips first.
func (r *pgTripRepo) ListRecent(ctx context.Context, limit int) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY date DESC, id DESC
		LIMIT @limit`

	trips, err := r.list(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListRecent: %w", err)
	}
	return trips, nil
}

// ListByMonth returns the trips of one calendar month, oldest first.
func (r *pgTripRepo) ListByMonth(ctx context.Context, m domain.Month) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE date >= @from AND date < @to
		ORDER BY date, id`

	trips, err := r.list(ctx, q, pgx.NamedArgs{"from": m.Start(), "to": m.End()})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByMonth: %w", err)
	}
	return trips, nil
}

// ListAll returns every trip, oldest first.
func (r *pgTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY date, id`

	trips, err := r.list(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListAll: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanPgTrip(rows)
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

// MonthTotals sums distances and costs over one calendar month.
// SUM over no rows is NULL, hence the COALESCEs.
func (r *pgTripRepo) MonthTotals(ctx context.Context, m domain.Month) (domain.DistanceTotals, error) {
	const q = `
		SELECT COALESCE(SUM(distance_km), 0)::bigint,
		       COALESCE(SUM(distance_km) FILTER (WHERE trip_type = 'business'), 0)::bigint,
		       COALESCE(SUM(fuel_cost + parking_cost + toll_cost), 0)
		FROM trips
		WHERE date >= @from AND date < @to`

	var (
		totals domain.DistanceTotals
		cost   pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"from": m.Start(), "to": m.End()}).
		Scan(&totals.TotalKM, &totals.BusinessKM, &cost)
	if err != nil {
		return domain.DistanceTotals{}, fmt.Errorf("repo.TripRepo.MonthTotals: %w", err)
	}
	totals.TotalCost = fromNumeric(cost)
	return totals, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET date           = @date,
		    start_location = @start_location,
		    end_location   = @end_location,
		    start_odometer = @start_odometer,
		    end_odometer   = @end_odometer,
		    distance_km    = @distance_km,
		    purpose        = @purpose,
		    trip_type      = @trip_type,
		    license_plate  = @license_plate,
		    client_project = @client_project,
		    notes          = @notes,
		    fuel_cost      = @fuel_cost,
		    parking_cost   = @parking_cost,
		    toll_cost      = @toll_cost
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	result, err := scanPgTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapPgError(err))
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPgTrip maps a single database row into a domain.Trip.
// It handles the DATE, NUMERIC and nullable odometer conversions.
func scanPgTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		date     pgtype.Date
		tripType string
		fuel     pgtype.Numeric
		parking  pgtype.Numeric
		toll     pgtype.Numeric
	)

	err := s.Scan(&t.ID, &date, &t.StartLocation, &t.EndLocation, &t.StartOdometer, &t.EndOdometer,
		&t.DistanceKM, &t.Purpose, &tripType, &t.LicensePlate, &t.ClientProject, &t.Notes,
		&fuel, &parking, &toll, &t.CreatedAt)
	if err != nil {
		return domain.Trip{}, err
	}

	t.Date = date.Time
	t.TripType = domain.TripType(tripType)
	t.FuelCost = fromNumeric(fuel)
	t.ParkingCost = fromNumeric(parking)
	t.TollCost = fromNumeric(toll)
	return t, nil
}
