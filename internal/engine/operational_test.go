package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonwise/internal/vehicle"
)

func TestFuelClass(t *testing.T) {
	tests := []struct {
		name  string
		v     vehicle.Vehicle
		want  string
		found bool
	}{
		{"Gasoline", vehicle.Vehicle{Type: vehicle.ICE, FuelType: "Gasoline"}, FuelClassGasolineICE, true},
		{"Premium", vehicle.Vehicle{Type: vehicle.ICE, FuelType: "Premium Unleaded"}, FuelClassGasolineICE, true},
		{"Diesel", vehicle.Vehicle{Type: vehicle.ICE, FuelType: "diesel"}, FuelClassDieselICE, true},
		{"UnknownFuel", vehicle.Vehicle{Type: vehicle.ICE, FuelType: "E85"}, "", false},
		{"HEV", vehicle.Vehicle{Type: vehicle.HEV}, FuelClassHEV, true},
		{"PHEV", vehicle.Vehicle{Type: vehicle.PHEV}, FuelClassPHEVCS, true},
		{"EV", vehicle.Vehicle{Type: vehicle.EV}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FuelClass(tt.v)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperationalModel_Operational(t *testing.T) {
	tables := testTables()
	m := NewOperationalModel(tables.WellToWheel, NewGridResolver(tables.Grid))
	ctx := context.Background()

	t.Run("LabTestFallback", func(t *testing.T) {
		res, err := m.Operational(ctx, camry, "", 0)
		require.NoError(t, err)
		assert.Equal(t, SourceLabTest, res.Source)
		assert.InDelta(t, 150.0, res.GPerKm, 1e-9)
		assert.InDelta(t, 41790.0, res.LifetimeKg, 1e-9)
	})

	t.Run("WellToWheel", func(t *testing.T) {
		res, err := m.Operational(ctx, golf, "", 0)
		require.NoError(t, err)
		assert.Equal(t, SourceWellToWheel, res.Source)
		assert.Equal(t, FuelClassDieselICE, res.FuelClass)
		assert.InDelta(t, 229.64, res.GPerKm, 1e-9)
	})

	t.Run("NoRateAtAll", func(t *testing.T) {
		v := vehicle.Vehicle{Brand: "Acme", Model: "Flex", Year: 2020, Type: vehicle.ICE, FuelType: "E85"}
		_, err := m.Operational(ctx, v, "US", 2023)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "Operational emissions data not found for Acme Flex (2020)", err.Error())
	})

	t.Run("Electric", func(t *testing.T) {
		res, err := m.Operational(ctx, ioniq5, "US", 2023)
		require.NoError(t, err)
		assert.Equal(t, SourceGrid, res.Source)
		assert.InDelta(t, 72.0, res.GPerKm, 1e-9)
		assert.InDelta(t, 20059.2, res.LifetimeKg, 1e-9)
		require.NotNil(t, res.Grid)
		assert.False(t, res.Grid.UsedFallbackYear)
	})

	t.Run("ElectricFallbackYear", func(t *testing.T) {
		res, err := m.Operational(ctx, ioniq5, "US", 2018)
		require.NoError(t, err)
		require.NotNil(t, res.Grid)
		assert.True(t, res.Grid.UsedFallbackYear)
		assert.Equal(t, 2023, res.Grid.Year)
	})

	t.Run("ElectricMissingContext", func(t *testing.T) {
		_, err := m.Operational(ctx, ioniq5, "", 2023)
		require.ErrorIs(t, err, ErrMissingInput)
		_, err = m.Operational(ctx, ioniq5, "US", 0)
		require.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("ElectricMissingConsumption", func(t *testing.T) {
		_, err := m.Operational(ctx, leaf, "US", 2023)
		require.ErrorIs(t, err, ErrMissingInput)
		assert.Equal(t, "EV missing electric consumption data", err.Error())
	})

	t.Run("ElectricUnknownCountry", func(t *testing.T) {
		_, err := m.Operational(ctx, ioniq5, "XX", 2023)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FuelCellUnsupported", func(t *testing.T) {
		_, err := m.Operational(ctx, mirai, "US", 2023)
		require.ErrorIs(t, err, ErrInvalidPowertrain)
		assert.Equal(t, "Unknown powertrain: FCV", err.Error())
	})
}
