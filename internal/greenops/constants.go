package greenops

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e of one unit of activity:
//
//	equivalency = kg_CO2e / factor
const (
	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822
)

// Unit Conversion Constants for normalizing carbon values to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display Threshold Constants control when equivalencies are shown.
const (
	// MinEquivalencyThresholdKg is the smallest mass given equivalencies.
	// Below it the results round to nothing meaningful.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// Carbon score scaling: 0 g/km scores 100 and ScoreZeroGPerKm scores 0.
const (
	MaxScore        = 100.0
	ScoreZeroGPerKm = 300.0

	ExcellentMin = 80.0
	GoodMin      = 60.0
	ModerateMin  = 40.0

	scoreGPerKmPoint = ScoreZeroGPerKm / MaxScore
)

const (
	gramsPerKg = 1000.0
	kgPerTonne = 1000.0
)
