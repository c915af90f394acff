// Package engine computes vehicle lifecycle emissions and the analyses
// derived from them: break-even distance, greenwashing risk and ranked
// recommendations. Every analysis goes through Engine.Lifecycle.
package engine

import (
	"context"
	"errors"

	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/reference"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// LifecycleResult is the per-km footprint of one vehicle in one grid
// context. Each component is rounded to two decimals and TotalGPerKm is
// the sum of the rounded components.
type LifecycleResult struct {
	Brand      string             `json:"brand"`
	Model      string             `json:"model"`
	Year       int                `json:"year"`
	Powertrain vehicle.Powertrain `json:"powertrain"`

	OperationalGPerKm   float64 `json:"operational_g_per_km"`
	ManufacturingGPerKm float64 `json:"manufacturing_g_per_km"`
	TotalGPerKm         float64 `json:"total_g_per_km"`

	// ManufacturingTotalKg is the unamortized manufacturing footprint.
	ManufacturingTotalKg  float64 `json:"manufacturing_total_kg"`
	OperationalLifetimeKg float64 `json:"operational_lifetime_kg"`

	OperationalSource OperationalSource `json:"operational_source"`
	GridYear          int               `json:"grid_year,omitempty"`
	UsedFallbackYear  bool              `json:"used_fallback_year,omitempty"`
}

// Key returns the identity of the vehicle the result describes.
func (r LifecycleResult) Key() vehicle.Key {
	return vehicle.Key{Brand: r.Brand, Model: r.Model, Year: r.Year, Type: r.Powertrain}
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxCandidates overrides the recommendation processing budget.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCandidates = n
		}
	}
}

// WithBatchSize overrides the number of recommendation candidates
// evaluated per batch.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithRawGrid makes electric vehicles use the raw grid series instead of
// the loss-corrected one.
func WithRawGrid() Option {
	return func(e *Engine) {
		e.useCorrected = false
	}
}

// Engine composes the reference tables and models. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	tables        *reference.Tables
	grid          *GridResolver
	manufacturing *ManufacturingModel
	operational   *OperationalModel

	maxCandidates int
	batchSize     int
	useCorrected  bool
}

// New builds an Engine over tables.
func New(tables *reference.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables:        tables,
		grid:          NewGridResolver(tables.Grid),
		manufacturing: NewManufacturingModel(tables.Manufacturing),
		maxCandidates: MaxRecommendCandidates,
		batchSize:     DefaultRecommendBatchSize,
		useCorrected:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.operational = NewOperationalModel(tables.WellToWheel, e.grid).WithCorrectedGrid(e.useCorrected)
	return e
}

// Catalog returns the vehicle catalog.
func (e *Engine) Catalog() *vehicle.Catalog {
	return e.tables.Vehicles
}

// LookupVehicle finds a catalog vehicle by brand, model and year. A miss
// is reported as ErrNotFound.
func (e *Engine) LookupVehicle(brand, model string, year int) (vehicle.Vehicle, error) {
	v, err := e.tables.Vehicles.Lookup(brand, model, year)
	if err != nil {
		return vehicle.Vehicle{}, newCalcError(ErrNotFound, "Vehicle not found: %s %s (%d)", brand, model, year)
	}
	return v, nil
}

// Grid returns the grid resolver.
func (e *Engine) Grid() *GridResolver {
	return e.grid
}

// Manufacturing returns the manufacturing model.
func (e *Engine) Manufacturing() *ManufacturingModel {
	return e.manufacturing
}

// Lifecycle computes the lifecycle footprint of v. Operational errors are
// returned unchanged; manufacturing failures surface as a CalcError.
func (e *Engine) Lifecycle(ctx context.Context, v vehicle.Vehicle, country string, year int) (LifecycleResult, error) {
	log := logging.FromContext(ctx)

	op, err := e.operational.Operational(ctx, v, country, year)
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "lifecycle").
			Str("vehicle", v.Label()).
			Err(err).
			Msg("operational calculation failed")
		return LifecycleResult{}, err
	}

	mfgKg, err := e.manufacturing.TotalKg(v)
	if err != nil {
		var calcErr *CalcError
		if !errors.As(err, &calcErr) {
			calcErr = newCalcError(ErrNotFound, "%s", err.Error())
		}
		return LifecycleResult{}, calcErr
	}

	mfgGPerKm := round2(mfgKg * gramsPerKg / LifetimeKm)

	res := LifecycleResult{
		Brand:                 v.Brand,
		Model:                 v.Model,
		Year:                  v.Year,
		Powertrain:            v.Type,
		OperationalGPerKm:     op.GPerKm,
		ManufacturingGPerKm:   mfgGPerKm,
		TotalGPerKm:           op.GPerKm + mfgGPerKm,
		ManufacturingTotalKg:  mfgKg,
		OperationalLifetimeKg: op.LifetimeKg,
		OperationalSource:     op.Source,
	}
	if op.Grid != nil {
		res.GridYear = op.Grid.Year
		res.UsedFallbackYear = op.Grid.UsedFallbackYear
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "lifecycle").
		Str("vehicle", v.Label()).
		Float64("operational_g_per_km", res.OperationalGPerKm).
		Float64("manufacturing_g_per_km", res.ManufacturingGPerKm).
		Float64("total_g_per_km", res.TotalGPerKm).
		Msg("lifecycle calculated")

	return res, nil
}
