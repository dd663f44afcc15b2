package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
// Numeric fields accept a JSON number or string and are parsed leniently.
type TripRequest struct {
	Date          string     `json:"date"`
	StartLocation string     `json:"start_location"`
	EndLocation   string     `json:"end_location"`
	VehicleID     *int64     `json:"vehicle_id,omitempty"`
	StartOdometer flexString `json:"start_odometer,omitempty"`
	EndOdometer   flexString `json:"end_odometer,omitempty"`
	Distance      flexString `json:"distance,omitempty"`
	TripType      string     `json:"trip_type,omitempty"`
	Purpose       string     `json:"purpose,omitempty"`
	ClientProject string     `json:"client_project,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	FuelCost      flexString `json:"fuel_cost,omitempty"`
	ParkingCost   flexString `json:"parking_cost,omitempty"`
	TollCost      flexString `json:"toll_cost,omitempty"`
}

// Trip is the wire form of a stored trip. Amounts are decimal strings with
// two places.
type Trip struct {
	ID            int64              `json:"id"`
	Date          openapi_types.Date `json:"date"`
	StartLocation string             `json:"start_location"`
	EndLocation   string             `json:"end_location"`
	StartOdometer *int64             `json:"start_odometer"`
	EndOdometer   *int64             `json:"end_odometer"`
	DistanceKM    int64              `json:"distance_km"`
	Purpose       string             `json:"purpose"`
	TripType      string             `json:"trip_type"`
	LicensePlate  string             `json:"license_plate"`
	ClientProject string             `json:"client_project"`
	Notes         string             `json:"notes"`
	FuelCost      string             `json:"fuel_cost"`
	ParkingCost   string             `json:"parking_cost"`
	TollCost      string             `json:"toll_cost"`
	TotalCost     string             `json:"total_cost"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data []Trip `json:"data"`
}

// ListTrips handles GET /trips.
// Returns the most recent trips, newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListRecent(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{Data: data})
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.trips.Save(r.Context(), body.form(), nil)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.trips.Save(r.Context(), body.form(), &id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
// Deleting a trip that does not exist still answers 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (b TripRequest) form() domain.TripForm {
	return domain.TripForm{
		Date:          b.Date,
		StartLocation: b.StartLocation,
		EndLocation:   b.EndLocation,
		VehicleID:     b.VehicleID,
		StartOdometer: string(b.StartOdometer),
		EndOdometer:   string(b.EndOdometer),
		Distance:      string(b.Distance),
		TripType:      b.TripType,
		Purpose:       b.Purpose,
		ClientProject: b.ClientProject,
		Notes:         b.Notes,
		FuelCost:      string(b.FuelCost),
		ParkingCost:   string(b.ParkingCost),
		TollCost:      string(b.TollCost),
	}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:            t.ID,
		Date:          openapi_types.Date{Time: t.Date},
		StartLocation: t.StartLocation,
		EndLocation:   t.EndLocation,
		StartOdometer: t.StartOdometer,
		EndOdometer:   t.EndOdometer,
		DistanceKM:    t.DistanceKM,
		Purpose:       t.Purpose,
		TripType:      string(t.TripType),
		LicensePlate:  t.LicensePlate,
		ClientProject: t.ClientProject,
		Notes:         t.Notes,
		FuelCost:      t.FuelCost.StringFixed(2),
		ParkingCost:   t.ParkingCost.StringFixed(2),
		TollCost:      t.TollCost.StringFixed(2),
		TotalCost:     t.TotalCost().StringFixed(2),
		CreatedAt:     t.CreatedAt,
	}
}
