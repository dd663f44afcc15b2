package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mileage-logbook/internal/domain"
	"github.com/pkordes/mileage-logbook/internal/handler"
)

func vehicleFixture(id int64) domain.Vehicle {
	return domain.Vehicle{
		ID:           id,
		LicensePlate: "AB-123-C",
		Brand:        "Volvo",
		Model:        "V60",
		FuelType:     domain.FuelHybrid,
		Active:       true,
		CreatedAt:    time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
	}
}

func newVehicleHandler(svc handler.VehicleServicer) http.Handler {
	return newHTTPHandler(handler.Deps{Vehicles: svc})
}

func TestAddVehicle_201(t *testing.T) {
	var got domain.VehicleInput
	svc := &mockVehicleServicer{
		add: func(_ context.Context, in domain.VehicleInput) (domain.Vehicle, error) {
			got = in
			return vehicleFixture(1), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/vehicles", jsonBody(t, map[string]any{
		"license_plate": " ab-123-c ", "brand": "Volvo", "model": "V60", "fuel_type": "hybrid",
	}))
	rec := httptest.NewRecorder()
	newVehicleHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, " ab-123-c ", got.LicensePlate, "normalization belongs to the service")
	assert.Equal(t, "hybrid", got.FuelType)

	var resp handler.Vehicle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "AB-123-C", resp.LicensePlate)
	assert.Equal(t, "Hybrid", resp.FuelType)
	assert.True(t, resp.Active)
}

func TestAddVehicle_409_DuplicatePlate(t *testing.T) {
	svc := &mockVehicleServicer{
		add: func(context.Context, domain.VehicleInput) (domain.Vehicle, error) {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w: license plate AB-123-C already registered", domain.ErrConflict)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/vehicles", jsonBody(t, map[string]any{"license_plate": "AB-123-C", "brand": "Volvo"}))
	rec := httptest.NewRecorder()
	newVehicleHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	e := decodeError(t, rec.Body)
	assert.Equal(t, "conflict", e.Error.Code)
	assert.Equal(t, "license plate AB-123-C already registered", e.Error.Message)
}

func TestAddVehicle_422_MissingBrand(t *testing.T) {
	svc := &mockVehicleServicer{
		add: func(context.Context, domain.VehicleInput) (domain.Vehicle, error) {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w: brand is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/vehicles", jsonBody(t, map[string]any{"license_plate": "AB-123-C"}))
	rec := httptest.NewRecorder()
	newVehicleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListVehicles_200(t *testing.T) {
	svc := &mockVehicleServicer{
		listActive: func(context.Context) ([]domain.Vehicle, error) {
			return []domain.Vehicle{vehicleFixture(1), vehicleFixture(2)}, nil
		},
	}

	rec := httptest.NewRecorder()
	newVehicleHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.VehicleList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.EqualValues(t, 2, resp.Data[1].ID)
}

func TestGetDefaultVehicle(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		svc := &mockVehicleServicer{
			def: func(context.Context) (domain.Vehicle, bool, error) { return vehicleFixture(3), true, nil },
		}
		rec := httptest.NewRecorder()
		newVehicleHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles/default", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.DefaultVehicle
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Vehicle)
		assert.EqualValues(t, 3, resp.Vehicle.ID)
	})

	t.Run("no active vehicles", func(t *testing.T) {
		svc := &mockVehicleServicer{
			def: func(context.Context) (domain.Vehicle, bool, error) { return domain.Vehicle{}, false, nil },
		}
		rec := httptest.NewRecorder()
		newVehicleHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles/default", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"vehicle":null}`, rec.Body.String())
	})
}

func TestDeactivateVehicle_204(t *testing.T) {
	var got int64
	svc := &mockVehicleServicer{
		deactivate: func(_ context.Context, id int64) error {
			got = id
			return nil
		},
	}

	rec := httptest.NewRecorder()
	newVehicleHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/vehicles/4", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, 4, got)
}
