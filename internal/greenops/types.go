// Package greenops turns lifecycle emission figures into ratings people
// can read: a 0-100 carbon score, the annual footprint of a driving
// profile and everyday equivalencies for a mass of CO2e.
package greenops

import "fmt"

// EquivalencyType is a category of everyday equivalency.
type EquivalencyType int

const (
	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings EquivalencyType = iota

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is an emission mass with its unit (g, kg, t, lb, optionally
// suffixed with CO2e).
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one input.
type EquivalencyOutput struct {
	// InputKg is the normalized input in kg CO2e.
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to ~48 tree seedlings grown for 10 years or ~158 days of home electricity".
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated form for table cells.
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Category is the carbon score band.
type Category string

// Score categories.
const (
	CategoryExcellent Category = "Excellent"
	CategoryGood      Category = "Good"
	CategoryModerate  Category = "Moderate"
	CategoryHigh      Category = "High Emission"
)

// ScoreResult is a 0-100 rating of a lifecycle g/km figure.
type ScoreResult struct {
	Score    float64  `json:"score"`
	Category Category `json:"category"`
}

// AnnualImpactResult is the yearly footprint of a driving profile.
type AnnualImpactResult struct {
	AnnualKg     float64 `json:"annual_kg"`
	AnnualTonnes float64 `json:"annual_tons"`
}
