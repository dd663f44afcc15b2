package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// pathID binds the {id} path parameter.
func pathID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id: %v", domain.ErrValidation, err)
	}
	return id, nil
}

// queryString binds an optional string query parameter; absent yields "".
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("%w: invalid %s: %v", domain.ErrValidation, name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// queryMonth binds the optional ?month=YYYY-MM parameter.
func queryMonth(r *http.Request) (*domain.Month, error) {
	raw, err := queryString(r, "month")
	if err != nil || raw == "" {
		return nil, err
	}
	m, err := domain.ParseMonth(raw)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// flexString accepts a JSON string, number or null. Form fields such as
// odometer readings and costs are parsed leniently by the domain, so the raw
// text is kept as typed.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}
