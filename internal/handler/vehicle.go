package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// VehicleRequest is the body of POST /vehicles.
type VehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	Brand        string `json:"brand"`
	Model        string `json:"model,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	LeaseCompany string `json:"lease_company,omitempty"`
}

// Vehicle is the wire form of a roster entry.
type Vehicle struct {
	ID           int64     `json:"id"`
	LicensePlate string    `json:"license_plate"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	FuelType     string    `json:"fuel_type"`
	LeaseCompany string    `json:"lease_company"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// VehicleList is the body of GET /vehicles.
type VehicleList struct {
	Data []Vehicle `json:"data"`
}

// DefaultVehicle is the body of GET /vehicles/default. Vehicle is null when
// the roster has no active vehicle.
type DefaultVehicle struct {
	Vehicle *Vehicle `json:"vehicle"`
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.ListActive(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	data := make([]Vehicle, len(vehicles))
	for i, v := range vehicles {
		data[i] = vehicleToResponse(v)
	}
	writeJSON(w, http.StatusOK, VehicleList{Data: data})
}

// AddVehicle handles POST /vehicles.
// A plate that is already registered answers 409.
func (s *Server) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var body VehicleRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.vehicles.Add(r.Context(), domain.VehicleInput{
		LicensePlate: body.LicensePlate,
		Brand:        body.Brand,
		Model:        body.Model,
		FuelType:     body.FuelType,
		LeaseCompany: body.LeaseCompany,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, vehicleToResponse(created))
}

// GetDefaultVehicle handles GET /vehicles/default.
func (s *Server) GetDefaultVehicle(w http.ResponseWriter, r *http.Request) {
	v, ok, err := s.vehicles.Default(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "settings not found")
		return
	}
	var resp DefaultVehicle
	if ok {
		dto := vehicleToResponse(v)
		resp.Vehicle = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeactivateVehicle handles DELETE /vehicles/{id}.
// The vehicle is hidden from listings; trips keep their plate snapshot.
func (s *Server) DeactivateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	if err := s.vehicles.Deactivate(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func vehicleToResponse(v domain.Vehicle) Vehicle {
	return Vehicle{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		Brand:        v.Brand,
		Model:        v.Model,
		FuelType:     string(v.FuelType),
		LeaseCompany: v.LeaseCompany,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
	}
}
