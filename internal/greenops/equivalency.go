package greenops

import (
	"context"
	"fmt"

	"github.com/rshade/carbonwise/internal/logging"
)

// Calculate expresses input as tree seedlings, home electricity days and
// smartphone charges. Inputs below MinEquivalencyThresholdKg return an
// empty output without error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	trees := kg / EPATreeSeedlingFactor
	homeDays := kg / EPAHomeDayFactor
	phones := kg / EPASmartphoneChargeFactor
	if err := checkFinite(trees, homeDays, phones); err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	results := []EquivalencyResult{
		{Type: EquivalencyTreeSeedlings, Value: trees, Label: "tree seedlings grown for 10 years"},
		{Type: EquivalencyHomeDays, Value: homeDays, Label: "days of home electricity"},
		{Type: EquivalencySmartphonesCharged, Value: phones, Label: "smartphones charged"},
	}
	for i := range results {
		results[i].FormattedValue = formatEquivalencyValue(results[i].Value)
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to ~%s tree seedlings grown for 10 years or ~%s days of home electricity",
			results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf("(≈ %s trees, %s home-days)", results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// ForDistance computes equivalencies for driving distanceKm at gPerKm.
// Failures are logged and yield an empty output.
func ForDistance(ctx context.Context, gPerKm, distanceKm float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: gPerKm * distanceKm, Unit: "g"})
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "greenops").
			Str("operation", "equivalency").
			Float64("g_per_km", gPerKm).
			Float64("distance_km", distanceKm).
			Err(err).
			Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatFloat(v, 0)
}
