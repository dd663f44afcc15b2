package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func roster() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: 1, LicensePlate: "AB-123-C", Active: true},
		{ID: 2, LicensePlate: "XY-999-Z", Active: true},
	}
}

func TestResolveDefaultVehicle_PrefersConfiguredDefault(t *testing.T) {
	s := domain.DefaultSettings()
	s.DefaultVehicleID = ptr(int64(2))

	v, ok := domain.ResolveDefaultVehicle(s, roster())

	require.True(t, ok)
	assert.EqualValues(t, 2, v.ID)
}

func TestResolveDefaultVehicle_FallsBackToFirstActive(t *testing.T) {
	s := domain.DefaultSettings()
	s.DefaultVehicleID = ptr(int64(42)) // deactivated or unknown

	v, ok := domain.ResolveDefaultVehicle(s, roster())

	require.True(t, ok)
	assert.EqualValues(t, 1, v.ID)
}

func TestResolveDefaultVehicle_NoVehicles(t *testing.T) {
	_, ok := domain.ResolveDefaultVehicle(domain.DefaultSettings(), nil)
	assert.False(t, ok)
}

func TestParseFuelType(t *testing.T) {
	ft, err := domain.ParseFuelType("")
	require.NoError(t, err)
	assert.Equal(t, domain.FuelPetrol, ft)

	ft, err = domain.ParseFuelType("electric")
	require.NoError(t, err)
	assert.Equal(t, domain.FuelElectric, ft)

	_, err = domain.ParseFuelType("Steam")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "AB-123-C", domain.NormalizePlate("  ab-123-c "))
}
