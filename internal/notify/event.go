// Package notify announces saved trips to external systems: an outbound
// webhook configured in the settings, and optionally an AMQP exchange.
// Delivery is fire-and-forget; failures are logged and dropped.
package notify

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// EventType identifies trip notifications on the wire.
const EventType = "mileage_entry"

// Event is the JSON body sent for every saved trip.
type Event struct {
	Type          string      `json:"type"`
	TripID        int64       `json:"trip_id"`
	Date          string      `json:"date"`
	DistanceKM    int64       `json:"distance_km"`
	TripType      string      `json:"trip_type"`
	StartLocation string      `json:"start_location"`
	EndLocation   string      `json:"end_location"`
	Purpose       string      `json:"purpose"`
	Reimbursement json.Number `json:"reimbursement"`
	LicensePlate  string      `json:"license_plate"`
	Timestamp     string      `json:"timestamp"`
}

// NewEvent builds the notification for trip. Business trips carry
// distance x rate rounded to cents; every other trip type carries 0.
func NewEvent(trip domain.Trip, rate decimal.Decimal, at time.Time) Event {
	reimbursement := decimal.Zero
	if trip.IsBusiness() {
		reimbursement = decimal.NewFromInt(trip.DistanceKM).Mul(rate).Round(2)
	}
	return Event{
		Type:          EventType,
		TripID:        trip.ID,
		Date:          trip.Date.Format(domain.DateLayout),
		DistanceKM:    trip.DistanceKM,
		TripType:      string(trip.TripType),
		StartLocation: trip.StartLocation,
		EndLocation:   trip.EndLocation,
		Purpose:       trip.Purpose,
		Reimbursement: json.Number(reimbursement.String()),
		LicensePlate:  trip.LicensePlate,
		Timestamp:     at.Format(time.RFC3339),
	}
}
