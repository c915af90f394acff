package engine

import (
	"github.com/rshade/carbonwise/internal/reference"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// Manufacturing classes as named in the GREET2 vehicle-cycle tables.
const (
	ClassICEV = "ICEV"
	ClassHEV  = "HEV"
	ClassPHEV = "PHEV"
	ClassEV   = "EV"
	ClassFCV  = "FCV"
)

// Battery chemistries.
const (
	ChemLeadAcid = "LeadAcid"
	ChemNiMH     = "NiMH"
	ChemLiIon    = "LiIon"
)

// ManufacturingClass maps a powertrain to its manufacturing class.
func ManufacturingClass(p vehicle.Powertrain) (string, bool) {
	switch p {
	case vehicle.ICE:
		return ClassICEV, true
	case vehicle.HEV:
		return ClassHEV, true
	case vehicle.PHEV:
		return ClassPHEV, true
	case vehicle.EV:
		return ClassEV, true
	case vehicle.FCV:
		return ClassFCV, true
	default:
		return "", false
	}
}

// BatteryChemistry returns the fixed traction battery chemistry of a class.
func BatteryChemistry(class string) (string, bool) {
	switch class {
	case ClassICEV:
		return ChemLeadAcid, true
	case ClassHEV, ClassFCV:
		return ChemNiMH, true
	case ClassPHEV, ClassEV:
		return ChemLiIon, true
	default:
		return "", false
	}
}

// ManufacturingBreakdown itemizes the manufacturing footprint in kg CO2e.
type ManufacturingBreakdown struct {
	Class     string  `json:"class"`
	Chemistry string  `json:"chemistry,omitempty"`
	GliderKg  float64 `json:"glider_kg"`
	BatteryKg float64 `json:"battery_kg"`
	FluidsKg  float64 `json:"fluids_kg"`
	TotalKg   float64 `json:"total_kg"`
}

// ManufacturingModel computes vehicle-cycle emissions.
type ManufacturingModel struct {
	tables reference.ManufacturingTables
}

// NewManufacturingModel returns a model over tables.
func NewManufacturingModel(tables reference.ManufacturingTables) *ManufacturingModel {
	return &ManufacturingModel{tables: tables}
}

// Breakdown returns the glider, battery and fluids components for v. It
// fails with ErrNotFound when the powertrain has no glider row.
func (m *ManufacturingModel) Breakdown(v vehicle.Vehicle) (ManufacturingBreakdown, error) {
	class, ok := ManufacturingClass(v.Type)
	if !ok {
		return ManufacturingBreakdown{}, manufacturingNotFound(v.Type)
	}
	glider, ok := m.tables.GliderKg[class]
	if !ok {
		return ManufacturingBreakdown{}, manufacturingNotFound(v.Type)
	}

	b := ManufacturingBreakdown{
		Class:     class,
		GliderKg:  glider,
		BatteryKg: m.batteryKg(class),
		FluidsKg:  m.tables.FluidsG[class] / gramsPerKg,
	}
	b.Chemistry, _ = BatteryChemistry(class)
	b.TotalKg = b.GliderKg + b.BatteryKg + b.FluidsKg
	return b, nil
}

// TotalKg returns the total manufacturing footprint of v in kg CO2e.
func (m *ManufacturingModel) TotalKg(v vehicle.Vehicle) (float64, error) {
	b, err := m.Breakdown(v)
	if err != nil {
		return 0, err
	}
	return b.TotalKg, nil
}

// PerKm returns the manufacturing footprint amortized over LifetimeKm, in
// kg CO2e per km.
func (m *ManufacturingModel) PerKm(v vehicle.Vehicle) (float64, error) {
	total, err := m.TotalKg(v)
	if err != nil {
		return 0, err
	}
	return total / LifetimeKm, nil
}

// batteryKg is zero when the class has no battery row, no assigned
// chemistry, or no emission factor for that chemistry.
func (m *ManufacturingModel) batteryKg(class string) float64 {
	weights, ok := m.tables.BatteryLb[class]
	if !ok {
		return 0
	}
	chem, ok := BatteryChemistry(class)
	if !ok {
		return 0
	}
	return weights[chem] * LbToKg * m.tables.BatteryFactors[chem]
}

func manufacturingNotFound(p vehicle.Powertrain) *CalcError {
	return newCalcError(ErrNotFound, "Manufacturing data not found for powertrain: %s", p)
}
