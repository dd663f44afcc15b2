package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "date", "start_location", "end_location",
	"start_odometer", "end_odometer", "distance_km", "trip_type",
	"purpose", "license_plate", "client_project", "notes",
	"fuel_cost", "parking_cost", "toll_cost",
}

// ExportRow is the JSON form of one exported trip.
type ExportRow struct {
	TripID        int64  `json:"trip_id"`
	Date          string `json:"date"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
	StartOdometer string `json:"start_odometer,omitempty"`
	EndOdometer   string `json:"end_odometer,omitempty"`
	DistanceKM    int64  `json:"distance_km"`
	TripType      string `json:"trip_type"`
	Purpose       string `json:"purpose"`
	LicensePlate  string `json:"license_plate"`
	ClientProject string `json:"client_project"`
	Notes         string `json:"notes"`
	FuelCost      string `json:"fuel_cost"`
	ParkingCost   string `json:"parking_cost"`
	TollCost      string `json:"toll_cost"`
}

// GetExport handles GET /export.
// ?month=YYYY-MM restricts the export to one month; ?format=csv returns CSV
// as a download, anything else JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	format, err := queryString(r, "format")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	rows, err := s.export.Trips(r.Context(), month)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	if format == "csv" {
		s.writeCSV(w, r, exportFilename(month), rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToJSON(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV buffers the whole export so a write error can still become a 500.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, filename string, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func exportFilename(month *domain.Month) string {
	if month == nil {
		return "trips.csv"
	}
	return "trips-" + month.String() + ".csv"
}

func domainRowToJSON(r domain.ExportRow) ExportRow {
	return ExportRow{
		TripID:        r.TripID,
		Date:          r.Date,
		StartLocation: r.StartLocation,
		EndLocation:   r.EndLocation,
		StartOdometer: r.StartOdometer,
		EndOdometer:   r.EndOdometer,
		DistanceKM:    r.DistanceKM,
		TripType:      string(r.TripType),
		Purpose:       r.Purpose,
		LicensePlate:  r.LicensePlate,
		ClientProject: r.ClientProject,
		Notes:         r.Notes,
		FuelCost:      r.FuelCost,
		ParkingCost:   r.ParkingCost,
		TollCost:      r.TollCost,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow in csvHeaders order.
// Missing odometer readings are empty cells.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.TripID, 10),
		r.Date,
		r.StartLocation,
		r.EndLocation,
		r.StartOdometer,
		r.EndOdometer,
		strconv.FormatInt(r.DistanceKM, 10),
		string(r.TripType),
		r.Purpose,
		r.LicensePlate,
		r.ClientProject,
		r.Notes,
		r.FuelCost,
		r.ParkingCost,
		r.TollCost,
	}
}
