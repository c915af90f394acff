package greenops

import "math"

// Score rates a lifecycle g/km figure from 0 to 100: zero emissions score
// 100 and ScoreZeroGPerKm or more scores 0. The category is chosen before
// the score is rounded to one decimal.
func Score(totalGPerKm float64) (ScoreResult, error) {
	if err := checkFinite(totalGPerKm); err != nil {
		return ScoreResult{}, err
	}
	if totalGPerKm < 0 {
		return ScoreResult{}, ErrNegativeValue
	}

	score := math.Max(0, MaxScore-totalGPerKm/scoreGPerKmPoint)
	return ScoreResult{Score: math.Round(score*10) / 10, Category: categoryFor(score)}, nil
}

func categoryFor(score float64) Category {
	switch {
	case score >= ExcellentMin:
		return CategoryExcellent
	case score >= GoodMin:
		return CategoryGood
	case score >= ModerateMin:
		return CategoryModerate
	default:
		return CategoryHigh
	}
}

// AnnualImpact returns the yearly footprint of driving annualKm at
// totalGPerKm: kg rounded to one decimal, tonnes to three.
func AnnualImpact(totalGPerKm, annualKm float64) (AnnualImpactResult, error) {
	if err := checkFinite(totalGPerKm, annualKm); err != nil {
		return AnnualImpactResult{}, err
	}
	if totalGPerKm < 0 || annualKm < 0 {
		return AnnualImpactResult{}, ErrNegativeValue
	}

	kg := totalGPerKm * annualKm / gramsPerKg
	return AnnualImpactResult{
		AnnualKg:     math.Round(kg*10) / 10,
		AnnualTonnes: math.Round(kg/kgPerTonne*1000) / 1000,
	}, nil
}
