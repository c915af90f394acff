// Package reference holds the static lookup tables the emissions engine
// reads: the vehicle catalog, grid intensity, manufacturing inventories and
// GREET well-to-wheel factors. Tables are built once and never mutated.
package reference

import (
	"sort"

	"github.com/rshade/carbonwise/internal/vehicle"
)

// GridEntry is one (country, year) cell. Either value may be absent where
// the source data has gaps.
type GridEntry struct {
	Raw       *float64 `json:"raw"`
	Corrected *float64 `json:"corrected"`
}

// GridTable maps ISO-3 country code to year to intensity in g CO2/kWh.
type GridTable map[string]map[int]GridEntry

// Years returns the years available for a country in ascending order.
func (g GridTable) Years(country string) []int {
	byYear := g[country]
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Countries returns every country code in the table, sorted.
func (g GridTable) Countries() []string {
	out := make([]string, 0, len(g))
	for c := range g {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ManufacturingTables carries the GREET2 vehicle-cycle inventory, keyed by
// manufacturing class (ICEV, HEV, PHEV, EV, FCV).
type ManufacturingTables struct {
	// GliderKg is the body and chassis footprint in kg CO2e.
	GliderKg map[string]float64
	// BatteryLb is battery mass in pounds keyed by class then chemistry.
	BatteryLb map[string]map[string]float64
	// FluidsG is the fluids footprint in g CO2e.
	FluidsG map[string]float64
	// BatteryFactors is kg CO2e per kg of battery, keyed by chemistry.
	BatteryFactors map[string]float64
}

// Tables is the complete read-only input set for the engine.
type Tables struct {
	Vehicles      *vehicle.Catalog
	Grid          GridTable
	Manufacturing ManufacturingTables
	// WellToWheel is GREET1 passenger WTW g CO2e/km keyed by fuel class.
	WellToWheel map[string]float64
}
