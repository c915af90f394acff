package engine

import "math"

// LifetimeKm is the assumed vehicle lifetime distance. Every per-km
// manufacturing figure and every lifetime total is derived from it.
const LifetimeKm = 278_600

// LbToKg converts pounds to kilograms.
const LbToKg = 0.453592

const (
	gramsPerKg  = 1000.0
	whPerKWh    = 1000.0
	daysPerYear = 365.0
	gramsPerT   = 1_000_000.0
)

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
