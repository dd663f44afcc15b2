package handler

import (
	"net/http"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// Summary is the body of GET /summary.
type Summary struct {
	Month         string `json:"month"`
	TotalKM       int64  `json:"total_km"`
	BusinessKM    int64  `json:"business_km"`
	Rate          string `json:"rate"`
	Reimbursement string `json:"reimbursement"`
	TotalCost     string `json:"total_cost"`
}

// GetSummary handles GET /summary.
// ?month=YYYY-MM selects the month; without it the current month is used.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	var sum domain.MonthlySummary
	if month != nil {
		sum, err = s.summary.Monthly(r.Context(), *month)
	} else {
		sum, err = s.summary.Current(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, err, "settings not found")
		return
	}

	writeJSON(w, http.StatusOK, Summary{
		Month:         sum.Month.String(),
		TotalKM:       sum.TotalKM,
		BusinessKM:    sum.BusinessKM,
		Rate:          sum.Rate.String(),
		Reimbursement: sum.Reimbursement.StringFixed(2),
		TotalCost:     sum.TotalCost.StringFixed(2),
	})
}
