package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr error
	}{
		{name: "grams", value: 4826550, unit: "g", wantKg: 4826.55},
		{name: "kilograms", value: 150, unit: "kg", wantKg: 150},
		{name: "tonnes", value: 2.5, unit: "t", wantKg: 2500},
		{name: "tonnes long form", value: 1, unit: "tonnes", wantKg: 1000},
		{name: "pounds", value: 100, unit: "lb", wantKg: 45.3592},
		{name: "gCO2e", value: 150000, unit: "gCO2e", wantKg: 150},
		{name: "case insensitive", value: 100, unit: " KgCO2e ", wantKg: 100},
		{name: "zero", value: 0, unit: "kg", wantKg: 0},
		{name: "invalid unit", value: 100, unit: "oz", wantErr: ErrInvalidUnit},
		{name: "empty unit", value: 100, unit: "", wantErr: ErrInvalidUnit},
		{name: "negative", value: -1, unit: "kg", wantErr: ErrNegativeValue},
		{name: "infinity", value: math.Inf(1), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "NaN", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "multiplication overflow", value: math.MaxFloat64 / 100, unit: "t", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-6)
		})
	}
}

func TestIsRecognizedUnit(t *testing.T) {
	for _, unit := range []string{"g", "kg", "t", "lb", "tCO2e", "TONNE"} {
		assert.True(t, IsRecognizedUnit(unit), unit)
	}
	for _, unit := range []string{"", "oz", "ton", "kWh"} {
		assert.False(t, IsRecognizedUnit(unit), unit)
	}
}
