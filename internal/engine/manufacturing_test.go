package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonwise/internal/vehicle"
)

func TestBatteryChemistry(t *testing.T) {
	tests := []struct {
		powertrain vehicle.Powertrain
		class      string
		chemistry  string
	}{
		{vehicle.ICE, ClassICEV, ChemLeadAcid},
		{vehicle.HEV, ClassHEV, ChemNiMH},
		{vehicle.PHEV, ClassPHEV, ChemLiIon},
		{vehicle.EV, ClassEV, ChemLiIon},
		{vehicle.FCV, ClassFCV, ChemNiMH},
	}
	for _, tt := range tests {
		t.Run(string(tt.powertrain), func(t *testing.T) {
			class, ok := ManufacturingClass(tt.powertrain)
			require.True(t, ok)
			assert.Equal(t, tt.class, class)

			chem, ok := BatteryChemistry(class)
			require.True(t, ok)
			assert.Equal(t, tt.chemistry, chem)
		})
	}

	_, ok := ManufacturingClass("DIESEL")
	assert.False(t, ok)
}

func TestManufacturingModel_Breakdown(t *testing.T) {
	m := NewManufacturingModel(testTables().Manufacturing)

	t.Run("ICEWithoutBatteryRow", func(t *testing.T) {
		b, err := m.Breakdown(camry)
		require.NoError(t, err)
		assert.InDelta(t, 4700.0, b.GliderKg, 1e-9)
		assert.Zero(t, b.BatteryKg)
		assert.InDelta(t, 126.55, b.FluidsKg, 1e-9)
		assert.InDelta(t, 4826.55, b.TotalKg, 1e-9)
	})

	t.Run("EVWithoutFluidsRow", func(t *testing.T) {
		b, err := m.Breakdown(model3)
		require.NoError(t, err)
		assert.Equal(t, ChemLiIon, b.Chemistry)
		assert.InDelta(t, 1000*LbToKg*12, b.BatteryKg, 1e-9)
		assert.Zero(t, b.FluidsKg)
		assert.InDelta(t, 10243.104, b.TotalKg, 1e-6)
	})

	t.Run("MissingGlider", func(t *testing.T) {
		_, err := m.Breakdown(mirai)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "Manufacturing data not found for powertrain: FCV", err.Error())
	})

	t.Run("PerKm", func(t *testing.T) {
		perKm, err := m.PerKm(camry)
		require.NoError(t, err)
		assert.InDelta(t, 4826.55/LifetimeKm, perKm, 1e-12)
	})
}
