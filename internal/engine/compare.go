package engine

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// CompareFailure records a vehicle that could not be calculated.
type CompareFailure struct {
	Vehicle vehicle.Key `json:"vehicle"`
	Reason  string      `json:"reason"`
}

// CompareResult holds the calculated vehicles in input order and the
// ones that failed.
type CompareResult struct {
	Results  []LifecycleResult `json:"results"`
	Failures []CompareFailure  `json:"failures,omitempty"`
}

// Compare calculates the lifecycle of every vehicle in one grid context.
// A failing vehicle never aborts the others.
func (e *Engine) Compare(ctx context.Context, vehicles []vehicle.Vehicle, country string, year int) (CompareResult, error) {
	results := make([]*LifecycleResult, len(vehicles))
	errs := make([]error, len(vehicles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range vehicles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Lifecycle(gctx, v, country, year)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CompareResult{}, err
	}

	out := CompareResult{Results: make([]LifecycleResult, 0, len(vehicles))}
	for i, v := range vehicles {
		if results[i] != nil {
			out.Results = append(out.Results, *results[i])
			continue
		}
		out.Failures = append(out.Failures, CompareFailure{Vehicle: v.Key(), Reason: errs[i].Error()})
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "compare").
		Int("requested", len(vehicles)).
		Int("calculated", len(out.Results)).
		Int("failed", len(out.Failures)).
		Msg("comparison complete")

	return out, nil
}

// SensitivityPoint is the footprint of one vehicle on one country's grid.
type SensitivityPoint struct {
	Country             string  `json:"country"`
	GridYear            int     `json:"grid_year,omitempty"`
	OperationalGPerKm   float64 `json:"operational_g_per_km"`
	ManufacturingGPerKm float64 `json:"manufacturing_g_per_km"`
	TotalGPerKm         float64 `json:"total_g_per_km"`
}

// GridSensitivity calculates v against each country's grid and returns
// the points sorted by total g/km, cleanest first. Countries that cannot
// be resolved are dropped.
func (e *Engine) GridSensitivity(
	ctx context.Context,
	v vehicle.Vehicle,
	countries []string,
	year int,
) ([]SensitivityPoint, error) {
	points := make([]*SensitivityPoint, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, country := range countries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Lifecycle(gctx, v, country, year)
			if err != nil {
				return nil //nolint:nilerr // unresolvable countries are dropped
			}
			points[i] = &SensitivityPoint{
				Country:             NormalizeCountry(country),
				GridYear:            res.GridYear,
				OperationalGPerKm:   res.OperationalGPerKm,
				ManufacturingGPerKm: res.ManufacturingGPerKm,
				TotalGPerKm:         res.TotalGPerKm,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SensitivityPoint, 0, len(countries))
	for _, p := range points {
		if p != nil {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalGPerKm < out[j].TotalGPerKm })
	return out, nil
}
