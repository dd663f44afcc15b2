package domain

import (
	"fmt"
	"strings"
	"time"
)

// FuelType is the propulsion type of a vehicle.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
	FuelLPG      FuelType = "LPG"
)

// FuelTypes lists every valid fuel type in display order.
var FuelTypes = []FuelType{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG}

// ParseFuelType matches s case-insensitively against FuelTypes.
// An empty string yields FuelPetrol, the column default.
func ParseFuelType(s string) (FuelType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FuelPetrol, nil
	}
	for _, ft := range FuelTypes {
		if strings.EqualFold(string(ft), s) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: unknown fuel type %q", ErrValidation, s)
}

// Vehicle is an entry of the vehicle roster.
// Vehicles are never hard-deleted; Active=false hides them from listings
// while historical trips keep their plate snapshot.
type Vehicle struct {
	ID           int64
	LicensePlate string
	Brand        string
	Model        string
	FuelType     FuelType
	LeaseCompany string
	Active       bool
	CreatedAt    time.Time
}

// VehicleInput is the raw content of the add-vehicle form.
type VehicleInput struct {
	LicensePlate string
	Brand        string
	Model        string
	FuelType     string
	LeaseCompany string
}

// NormalizePlate trims and upper-cases a license plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// FindVehicle returns the vehicle with the given id from vehicles.
func FindVehicle(vehicles []Vehicle, id int64) (Vehicle, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ResolveDefaultVehicle picks the vehicle the trip form should preselect:
// the configured default when it is among the active vehicles, otherwise the
// first active vehicle in listing order. ok is false when there are none.
func ResolveDefaultVehicle(s Settings, active []Vehicle) (Vehicle, bool) {
	if s.DefaultVehicleID != nil {
		if v, ok := FindVehicle(active, *s.DefaultVehicleID); ok {
			return v, true
		}
	}
	if len(active) > 0 {
		return active[0], true
	}
	return Vehicle{}, false
}
