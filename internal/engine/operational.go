package engine

import (
	"context"
	"strings"

	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// Well-to-wheel table keys.
const (
	FuelClassGasolineICE = "gasoline_ice"
	FuelClassDieselICE   = "diesel_ice"
	FuelClassHEV         = "hev_gasoline"
	FuelClassPHEVCS      = "phev_gasoline_cs"
)

// OperationalSource records which data produced an operational figure.
type OperationalSource string

// Operational sources.
const (
	SourceWellToWheel OperationalSource = "wtw"
	SourceLabTest     OperationalSource = "lab_test"
	SourceGrid        OperationalSource = "grid"
)

// OperationalResult is the per-km and lifetime use-phase footprint.
type OperationalResult struct {
	GPerKm     float64           `json:"g_per_km"`
	LifetimeKg float64           `json:"lifetime_kg"`
	Source     OperationalSource `json:"source"`
	FuelClass  string            `json:"fuel_class,omitempty"`
	// Grid is set for electric vehicles.
	Grid *GridIntensity `json:"grid,omitempty"`
}

// FuelClass derives the well-to-wheel key for a combustion vehicle. The
// second result is false when no class applies.
func FuelClass(v vehicle.Vehicle) (string, bool) {
	switch v.Type {
	case vehicle.ICE:
		fuel := strings.ToLower(v.FuelType)
		switch {
		case strings.Contains(fuel, "diesel"):
			return FuelClassDieselICE, true
		case strings.Contains(fuel, "gasoline"),
			strings.Contains(fuel, "petrol"),
			strings.Contains(fuel, "regular"),
			strings.Contains(fuel, "premium"):
			return FuelClassGasolineICE, true
		default:
			return "", false
		}
	case vehicle.HEV:
		return FuelClassHEV, true
	case vehicle.PHEV:
		// Charge-sustaining mode.
		return FuelClassPHEVCS, true
	default:
		return "", false
	}
}

// OperationalModel computes use-phase emissions.
type OperationalModel struct {
	wtw          map[string]float64
	grid         *GridResolver
	useCorrected bool
}

// NewOperationalModel returns a model over the WTW table and grid resolver.
// Electric vehicles use the loss-corrected grid series.
func NewOperationalModel(wtw map[string]float64, grid *GridResolver) *OperationalModel {
	return &OperationalModel{wtw: wtw, grid: grid, useCorrected: true}
}

// WithCorrectedGrid selects the loss-corrected (true) or raw grid series.
func (m *OperationalModel) WithCorrectedGrid(corrected bool) *OperationalModel {
	m.useCorrected = corrected
	return m
}

// Operational returns the use-phase footprint of v. Combustion vehicles
// ignore country and year. Electric vehicles need both.
func (m *OperationalModel) Operational(
	ctx context.Context,
	v vehicle.Vehicle,
	country string,
	year int,
) (OperationalResult, error) {
	switch v.Type {
	case vehicle.ICE, vehicle.HEV, vehicle.PHEV:
		return m.combustion(ctx, v)
	case vehicle.EV:
		return m.electric(ctx, v, country, year)
	default:
		return OperationalResult{}, newCalcError(ErrInvalidPowertrain, "Unknown powertrain: %s", v.Type)
	}
}

func (m *OperationalModel) combustion(ctx context.Context, v vehicle.Vehicle) (OperationalResult, error) {
	class, hasClass := FuelClass(v)
	if hasClass {
		if rate, ok := m.wtw[class]; ok {
			return newOperationalResult(rate, SourceWellToWheel, class), nil
		}
	}

	if v.CO2GPerKm == nil {
		return OperationalResult{}, newCalcError(ErrNotFound,
			"Operational emissions data not found for %s", v.Label())
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "operational").
		Str("vehicle", v.Label()).
		Str("fuel_class", class).
		Msg("no well-to-wheel entry, using lab-test rate")

	return newOperationalResult(*v.CO2GPerKm, SourceLabTest, class), nil
}

func (m *OperationalModel) electric(
	ctx context.Context,
	v vehicle.Vehicle,
	country string,
	year int,
) (OperationalResult, error) {
	if strings.TrimSpace(country) == "" || year == 0 {
		return OperationalResult{}, newCalcError(ErrMissingInput,
			"Country and year are required for EV calculations")
	}
	if v.ElectricWhPerKm == nil {
		return OperationalResult{}, newCalcError(ErrMissingInput,
			"EV missing electric consumption data")
	}

	grid, err := m.grid.Resolve(ctx, country, year, m.useCorrected)
	if err != nil {
		return OperationalResult{}, err
	}

	gPerKm := *v.ElectricWhPerKm / whPerKWh * grid.GPerKWh
	res := newOperationalResult(gPerKm, SourceGrid, "")
	res.Grid = &grid
	return res, nil
}

func newOperationalResult(gPerKm float64, source OperationalSource, fuelClass string) OperationalResult {
	rounded := round2(gPerKm)
	return OperationalResult{
		GPerKm:     rounded,
		LifetimeKg: round2(rounded * LifetimeKm / gramsPerKg),
		Source:     source,
		FuelClass:  fuelClass,
	}
}
