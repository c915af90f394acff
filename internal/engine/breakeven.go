package engine

import (
	"context"
	"math"

	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// NoBreakEvenMessage is reported when the electric vehicle never catches
// up because it is not operationally cleaner.
const NoBreakEvenMessage = "EV does not outperform the comparison vehicle operationally in this grid"

// Breakdown is the per-km footprint of one side of a comparison.
type Breakdown struct {
	Vehicle             vehicle.Key `json:"vehicle"`
	ManufacturingGPerKm float64     `json:"manufacturing_g_per_km"`
	OperationalGPerKm   float64     `json:"operational_g_per_km"`
	TotalGPerKm         float64     `json:"total_g_per_km"`
	ManufacturingKg     float64     `json:"manufacturing_total_kg"`
}

func breakdownOf(r LifecycleResult) Breakdown {
	return Breakdown{
		Vehicle:             r.Key(),
		ManufacturingGPerKm: r.ManufacturingGPerKm,
		OperationalGPerKm:   r.OperationalGPerKm,
		TotalGPerKm:         r.TotalGPerKm,
		ManufacturingKg:     r.ManufacturingTotalKg,
	}
}

// BreakEvenResult reports the distance after which the cleaner vehicle's
// cumulative emissions drop below the other's. BreakEvenKm is nil when
// there is no crossover, in which case Message explains why.
type BreakEvenResult struct {
	BreakEvenKm *float64 `json:"break_even_km"`
	Message     string   `json:"message,omitempty"`

	// ManufacturingDeltaG is clean minus dirty total manufacturing, in g.
	ManufacturingDeltaG float64 `json:"manufacturing_delta_g"`
	// ManufacturingDifferenceGPerKm spreads ManufacturingDeltaG over LifetimeKm.
	ManufacturingDifferenceGPerKm float64 `json:"manufacturing_difference_g_per_km"`
	// OperationalAdvantageGPerKm is dirty minus clean operational g/km.
	OperationalAdvantageGPerKm float64 `json:"operational_advantage_g_per_km"`

	Clean Breakdown `json:"clean"`
	Dirty Breakdown `json:"dirty"`
}

// HasBreakEven reports whether a crossover distance exists.
func (r BreakEvenResult) HasBreakEven() bool {
	return r.BreakEvenKm != nil
}

// BreakEven computes the crossover distance between an electric vehicle
// and a combustion or hybrid vehicle in the same grid context.
func (e *Engine) BreakEven(
	ctx context.Context,
	clean, dirty vehicle.Vehicle,
	country string,
	year int,
) (BreakEvenResult, error) {
	if clean.Type != vehicle.EV {
		return BreakEvenResult{}, newCalcError(ErrPreconditionFailed, "First vehicle must be an EV")
	}
	if !dirty.Type.IsCombustion() {
		return BreakEvenResult{}, newCalcError(ErrPreconditionFailed, "Second vehicle must be ICE, HEV, or PHEV")
	}
	if !clean.HasConsumption() {
		return BreakEvenResult{}, newCalcError(ErrPreconditionFailed, "EV vehicle missing electric consumption data")
	}

	cleanLC, err := e.Lifecycle(ctx, clean, country, year)
	if err != nil {
		return BreakEvenResult{}, err
	}
	dirtyLC, err := e.Lifecycle(ctx, dirty, country, year)
	if err != nil {
		return BreakEvenResult{}, err
	}

	deltaMfgG := (cleanLC.ManufacturingTotalKg - dirtyLC.ManufacturingTotalKg) * gramsPerKg
	deltaOp := dirtyLC.OperationalGPerKm - cleanLC.OperationalGPerKm

	res := BreakEvenResult{
		ManufacturingDeltaG:           deltaMfgG,
		ManufacturingDifferenceGPerKm: round2(deltaMfgG / LifetimeKm),
		OperationalAdvantageGPerKm:    round2(deltaOp),
		Clean:                         breakdownOf(cleanLC),
		Dirty:                         breakdownOf(dirtyLC),
	}

	log := logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "break_even").
		Str("clean", clean.Label()).
		Str("dirty", dirty.Label()).
		Float64("delta_manufacturing_g", deltaMfgG).
		Float64("delta_operational_g_per_km", deltaOp)

	if deltaOp <= 0 {
		res.Message = NoBreakEvenMessage
		log.Msg("no break-even")
		return res, nil
	}

	km := math.Round(deltaMfgG / deltaOp)
	res.BreakEvenKm = &km
	log.Float64("break_even_km", km).Msg("break-even calculated")
	return res, nil
}
