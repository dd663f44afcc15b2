// Package domain contains the core data types for the mileage logbook.
// Apart from the decimal type used for money, this package has no external
// dependencies and is imported by every other internal package
// (repo, service, notify, handler).
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of a trip date.
const DateLayout = "2006-01-02"

// RecentTripsLimit caps the recent-trips listing.
const RecentTripsLimit = 50

// TripType classifies a trip for reimbursement purposes.
// Only business trips count towards the reimbursable distance.
type TripType string

const (
	TripTypeBusiness TripType = "business"
	TripTypePrivate  TripType = "private"
	TripTypeCommute  TripType = "commute"
)

// TripTypes lists every valid trip type in display order.
var TripTypes = []TripType{TripTypeBusiness, TripTypePrivate, TripTypeCommute}

// ParseTripType validates s as a trip type. An empty string yields
// TripTypeBusiness, the form default.
func ParseTripType(s string) (TripType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TripTypeBusiness, nil
	}
	for _, tt := range TripTypes {
		if string(tt) == s {
			return tt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown trip type %q", ErrValidation, s)
}

// Trip is a single recorded journey.
//
// LicensePlate is a snapshot of the vehicle's plate taken when the trip was
// saved. It is deliberately not a foreign key: the value survives the vehicle
// being deactivated.
type Trip struct {
	ID            int64
	Date          time.Time // UTC midnight; only the calendar date is meaningful
	StartLocation string
	EndLocation   string
	StartOdometer *int64
	EndOdometer   *int64
	DistanceKM    int64
	Purpose       string
	TripType      TripType
	LicensePlate  string
	ClientProject string
	Notes         string
	FuelCost      decimal.Decimal
	ParkingCost   decimal.Decimal
	TollCost      decimal.Decimal
	CreatedAt     time.Time
}

// TotalCost returns the sum of the trip's fuel, parking and toll costs.
func (t Trip) TotalCost() decimal.Decimal {
	return t.FuelCost.Add(t.ParkingCost).Add(t.TollCost)
}

// IsBusiness reports whether the trip counts towards reimbursement.
func (t Trip) IsBusiness() bool {
	return t.TripType == TripTypeBusiness
}

// TripForm carries the raw values of the trip entry form.
// Numeric fields stay strings here because parsing them is part of the
// domain rules: malformed numbers fall back to zero instead of failing.
type TripForm struct {
	Date          string
	StartLocation string
	EndLocation   string
	VehicleID     *int64
	StartOdometer string
	EndOdometer   string
	Distance      string
	TripType      string
	Purpose       string
	ClientProject string
	Notes         string
	FuelCost      string
	ParkingCost   string
	TollCost      string
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}
