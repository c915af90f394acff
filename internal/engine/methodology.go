package engine

// Methodology describes the models behind every figure the engine reports.
type Methodology struct {
	Platform           string  `json:"platform"`
	OperationalModel   string  `json:"operational_model"`
	ManufacturingModel string  `json:"manufacturing_model"`
	RankingBasis       string  `json:"ranking_basis"`
	FinancialFactors   string  `json:"financial_factors"`
	LifetimeKm         float64 `json:"lifetime_km"`
	GridSeries         string  `json:"grid_series"`
}

// Methodology returns the methodology in effect for this engine.
func (e *Engine) Methodology() Methodology {
	series := "Ember raw generation intensity"
	if e.useCorrected {
		series = "Ember generation intensity corrected for transmission losses"
	}
	return Methodology{
		Platform:           "CarbonWise Lifecycle Intelligence",
		OperationalModel:   "GREET1 Passenger WTW + Ember Grid",
		ManufacturingModel: "GREET2 Vehicle-Cycle Model",
		RankingBasis:       "Lifecycle CO2e",
		FinancialFactors:   "Excluded",
		LifetimeKm:         LifetimeKm,
		GridSeries:         series,
	}
}
