package domain

// ExportRow is a single row in the trip export.
// It is a flat, presentation-ready view of a Trip: dates and odometer
// readings are pre-formatted strings so CSV and JSON encoders can share it.
type ExportRow struct {
	TripID        int64
	Date          string // "2006-01-02"
	StartLocation string
	EndLocation   string
	StartOdometer string // empty when not recorded
	EndOdometer   string // empty when not recorded
	DistanceKM    int64
	TripType      TripType
	Purpose       string
	LicensePlate  string
	ClientProject string
	Notes         string
	FuelCost      string
	ParkingCost   string
	TollCost      string
}
