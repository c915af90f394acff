package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		gPerKm   float64
		score    float64
		category Category
	}{
		{"zero emissions", 0, 100, CategoryExcellent},
		{"clean EV", 60, 80, CategoryExcellent},
		{"just below excellent", 60.3, 79.9, CategoryGood},
		{"efficient hybrid", 120, 60, CategoryGood},
		{"average ICE", 167.32, 44.2, CategoryModerate},
		{"high", 200, 33.3, CategoryHigh},
		{"beyond scale", 450, 0, CategoryHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.gPerKm)
			require.NoError(t, err)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestScore_CategoryUsesUnroundedScore(t *testing.T) {
	// 100 - 60.1/3 = 79.966..., displayed as 80 but still Good.
	got, err := Score(60.1)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, got.Score, 1e-9)
	assert.Equal(t, CategoryGood, got.Category)
}

func TestScore_Invalid(t *testing.T) {
	_, err := Score(-1)
	require.ErrorIs(t, err, ErrNegativeValue)
	_, err = Score(math.Inf(1))
	require.ErrorIs(t, err, ErrCalculationOverflow)
}

func TestAnnualImpact(t *testing.T) {
	got, err := AnnualImpact(167.32, 15000)
	require.NoError(t, err)
	assert.InDelta(t, 2509.8, got.AnnualKg, 1e-9)
	assert.InDelta(t, 2.51, got.AnnualTonnes, 1e-9)

	got, err = AnnualImpact(96.77, 12345)
	require.NoError(t, err)
	assert.InDelta(t, 1194.6, got.AnnualKg, 1e-9)
	assert.InDelta(t, 1.195, got.AnnualTonnes, 1e-9)

	_, err = AnnualImpact(100, -1)
	require.ErrorIs(t, err, ErrNegativeValue)
}
