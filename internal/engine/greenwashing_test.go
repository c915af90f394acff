package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonwise/internal/vehicle"
)

func metrics(total, op, mfg float64) GreenwashingMetrics {
	return GreenwashingMetrics{TotalGPerKm: fp(total), OperationalGPerKm: fp(op), ManufacturingGPerKm: fp(mfg)}
}

func TestAssessGreenwashing(t *testing.T) {
	tests := []struct {
		name         string
		m            GreenwashingMetrics
		powertrain   vehicle.Powertrain
		rules        []string
		level        RiskLevel
		transparency int
	}{
		{
			name:         "CleanEV",
			m:            metrics(80, 40, 40),
			powertrain:   vehicle.EV,
			rules:        []string{},
			level:        RiskLow,
			transparency: 100,
		},
		{
			name:         "DirtyGridEV",
			m:            metrics(160, 100, 60),
			powertrain:   vehicle.EV,
			rules:        []string{"ev_high_lifecycle", "ev_high_manufacturing", "ev_dirty_grid"},
			level:        RiskHigh,
			transparency: 55,
		},
		{
			name:         "EVManufacturingDominates",
			m:            metrics(90, 20, 70),
			powertrain:   vehicle.EV,
			rules:        []string{"ev_high_manufacturing", "ev_manufacturing_dominates"},
			level:        RiskMedium,
			transparency: 70,
		},
		{
			name:         "HybridNotBetter",
			m:            metrics(190.13, 172.05, 18.08),
			powertrain:   vehicle.HEV,
			rules:        []string{"hybrid_not_better"},
			level:        RiskMedium,
			transparency: 85,
		},
		{
			name:         "InefficientICE",
			m:            metrics(280, 260, 20),
			powertrain:   vehicle.ICE,
			rules:        []string{"ice_inefficient"},
			level:        RiskMedium,
			transparency: 85,
		},
		{
			name:         "CombustionManufacturingShare",
			m:            metrics(100, 50, 50),
			powertrain:   vehicle.PHEV,
			rules:        []string{"combustion_manufacturing_dominates"},
			level:        RiskMedium,
			transparency: 85,
		},
		{
			name:         "FuelCellNeverFlagged",
			m:            metrics(400, 300, 100),
			powertrain:   vehicle.FCV,
			rules:        []string{},
			level:        RiskLow,
			transparency: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AssessGreenwashing(tt.m, VehicleMeta{Type: tt.powertrain})

			got := make([]string, 0, len(res.Findings))
			for _, f := range res.Findings {
				got = append(got, f.Rule)
			}
			assert.Equal(t, tt.rules, got)
			assert.Len(t, res.Indicators, len(tt.rules))
			assert.Equal(t, tt.level, res.RiskLevel)
			assert.Equal(t, len(tt.rules) > 0, res.IsRisk)
			assert.Equal(t, tt.transparency, res.TransparencyScore)
		})
	}
}

func TestAssessGreenwashing_Messages(t *testing.T) {
	res := AssessGreenwashing(metrics(160, 100, 60), VehicleMeta{Type: vehicle.EV})
	require.Len(t, res.Indicators, 3)
	assert.Equal(t, "High lifecycle emissions (160 g/km) despite zero tailpipe marketing", res.Indicators[0])
	assert.Equal(t, "High manufacturing emissions (60 g/km) - battery production impact", res.Indicators[1])
	assert.Equal(t, "High grid intensity (100 g/km) - EV not clean in this region", res.Indicators[2])
	assert.Equal(t, SeverityHigh, res.Findings[0].Severity)
}

func TestAssessGreenwashing_FourFlags(t *testing.T) {
	res := AssessGreenwashing(metrics(300, 200, 200), VehicleMeta{Type: vehicle.EV})
	assert.Len(t, res.Findings, 4)
	assert.Equal(t, 40, res.TransparencyScore)
	assert.Equal(t, RiskHigh, res.RiskLevel)
}

func TestAssessGreenwashing_InsufficientData(t *testing.T) {
	res := AssessGreenwashing(GreenwashingMetrics{TotalGPerKm: fp(100)}, VehicleMeta{Type: vehicle.EV})
	assert.False(t, res.IsRisk)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, NeutralTransparency, res.TransparencyScore)
	assert.Equal(t, []string{InsufficientDataMessage}, res.Indicators)
}

func TestAssessGreenwashing_FromLifecycle(t *testing.T) {
	lc, err := testEngine().Lifecycle(context.Background(), ioniq5, "POL", 2023)
	require.NoError(t, err)

	// 180 Wh/km at 700 g/kWh is 126 g/km operational.
	res := AssessGreenwashing(MetricsFrom(lc), VehicleMeta{Type: lc.Powertrain, Brand: lc.Brand, Model: lc.Model})
	assert.True(t, res.IsRisk)
	assert.Contains(t, res.Indicators, "High grid intensity (126 g/km) - EV not clean in this region")
}
