package engine

import (
	"fmt"

	"github.com/rshade/carbonwise/internal/vehicle"
)

// RiskLevel grades greenwashing risk.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity tags an individual finding.
type Severity string

// Finding severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityHigh    Severity = "high"
)

// Greenwashing scoring constants.
const (
	HighRiskFlagCount       = 3
	TransparencyBase        = 100
	TransparencyPenalty     = 15
	NeutralTransparency     = 50
	InsufficientDataMessage = "Insufficient data for greenwashing analysis"
)

// GreenwashingMetrics are the lifecycle figures the heuristic inspects.
// Nil fields mean the figure is unknown.
type GreenwashingMetrics struct {
	TotalGPerKm         *float64 `json:"total_g_per_km"`
	OperationalGPerKm   *float64 `json:"operational_g_per_km"`
	ManufacturingGPerKm *float64 `json:"manufacturing_g_per_km"`
}

// MetricsFrom extracts heuristic inputs from a lifecycle result.
func MetricsFrom(r LifecycleResult) GreenwashingMetrics {
	total, op, mfg := r.TotalGPerKm, r.OperationalGPerKm, r.ManufacturingGPerKm
	return GreenwashingMetrics{TotalGPerKm: &total, OperationalGPerKm: &op, ManufacturingGPerKm: &mfg}
}

// VehicleMeta is the marketing-relevant metadata of the assessed vehicle.
type VehicleMeta struct {
	Type  vehicle.Powertrain `json:"type"`
	Brand string             `json:"brand,omitempty"`
	Model string             `json:"model,omitempty"`
}

// Finding is one triggered rule.
type Finding struct {
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// GreenwashingResult is the outcome of AssessGreenwashing.
type GreenwashingResult struct {
	IsRisk            bool      `json:"is_greenwashing_risk"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Indicators        []string  `json:"indicators"`
	Findings          []Finding `json:"findings"`
	TransparencyScore int       `json:"transparency_score"`
}

// figures are the resolved metrics a rule sees.
type figures struct {
	powertrain         vehicle.Powertrain
	total              float64
	operational        float64
	manufacturing      float64
	manufacturingShare float64
}

type greenwashingRule struct {
	name     string
	severity Severity
	applies  func(f figures) bool
	message  func(f figures) string
}

func isHybrid(p vehicle.Powertrain) bool { return p == vehicle.HEV || p == vehicle.PHEV }

// greenwashingRules are evaluated in order; each triggered rule adds one
// flag.
//
//nolint:gochecknoglobals // Constant rule table.
var greenwashingRules = []greenwashingRule{
	{
		name:     "ev_high_lifecycle",
		severity: SeverityHigh,
		applies:  func(f figures) bool { return f.powertrain == vehicle.EV && f.total > 100 },
		message: func(f figures) string {
			return fmt.Sprintf("High lifecycle emissions (%.0f g/km) despite zero tailpipe marketing", f.total)
		},
	},
	{
		name:     "ev_high_manufacturing",
		severity: SeverityWarning,
		applies:  func(f figures) bool { return f.powertrain == vehicle.EV && f.manufacturing > 50 },
		message: func(f figures) string {
			return fmt.Sprintf("High manufacturing emissions (%.0f g/km) - battery production impact", f.manufacturing)
		},
	},
	{
		name:     "ev_dirty_grid",
		severity: SeverityWarning,
		applies:  func(f figures) bool { return f.powertrain == vehicle.EV && f.operational > 80 },
		message: func(f figures) string {
			return fmt.Sprintf("High grid intensity (%.0f g/km) - EV not clean in this region", f.operational)
		},
	},
	{
		name:     "hybrid_not_better",
		severity: SeverityWarning,
		applies:  func(f figures) bool { return isHybrid(f.powertrain) && f.total > 150 },
		message: func(f figures) string {
			return fmt.Sprintf("Hybrid lifecycle (%.0f g/km) not significantly better than ICE", f.total)
		},
	},
	{
		name:     "ice_inefficient",
		severity: SeverityHigh,
		applies:  func(f figures) bool { return f.powertrain == vehicle.ICE && f.total > 250 },
		message: func(f figures) string {
			return fmt.Sprintf("High ICE emissions (%.0f g/km) - inefficient combustion", f.total)
		},
	},
	{
		name:     "ev_manufacturing_dominates",
		severity: SeverityWarning,
		applies:  func(f figures) bool { return f.powertrain == vehicle.EV && f.manufacturingShare > 60 },
		message: func(f figures) string {
			return fmt.Sprintf("Manufacturing dominates lifecycle (%.0f%%) - battery impact too high", f.manufacturingShare)
		},
	},
	{
		name:     "combustion_manufacturing_dominates",
		severity: SeverityInfo,
		applies:  func(f figures) bool { return f.powertrain.IsCombustion() && f.manufacturingShare > 40 },
		message: func(f figures) string {
			return fmt.Sprintf("Unusually high manufacturing share (%.0f%%)", f.manufacturingShare)
		},
	},
}

// AssessGreenwashing flags lifecycle figures that contradict typical green
// marketing for the vehicle's powertrain. Missing figures produce a
// neutral result rather than an error.
func AssessGreenwashing(m GreenwashingMetrics, meta VehicleMeta) GreenwashingResult {
	if m.TotalGPerKm == nil || m.OperationalGPerKm == nil || m.ManufacturingGPerKm == nil {
		return GreenwashingResult{
			IsRisk:     false,
			RiskLevel:  RiskLow,
			Indicators: []string{InsufficientDataMessage},
			Findings: []Finding{
				{Rule: "insufficient_data", Message: InsufficientDataMessage, Severity: SeverityInfo},
			},
			TransparencyScore: NeutralTransparency,
		}
	}

	f := figures{
		powertrain:    meta.Type,
		total:         *m.TotalGPerKm,
		operational:   *m.OperationalGPerKm,
		manufacturing: *m.ManufacturingGPerKm,
	}
	if f.total > 0 {
		f.manufacturingShare = f.manufacturing / f.total * 100
	}

	res := GreenwashingResult{Indicators: []string{}, Findings: []Finding{}}
	for _, rule := range greenwashingRules {
		if !rule.applies(f) {
			continue
		}
		msg := rule.message(f)
		res.Indicators = append(res.Indicators, msg)
		res.Findings = append(res.Findings, Finding{Rule: rule.name, Message: msg, Severity: rule.severity})
	}

	flags := len(res.Indicators)
	res.IsRisk = flags > 0
	res.RiskLevel = riskLevelFor(flags)
	res.TransparencyScore = max(0, TransparencyBase-TransparencyPenalty*flags)
	return res
}

func riskLevelFor(flags int) RiskLevel {
	switch {
	case flags >= HighRiskFlagCount:
		return RiskHigh
	case flags >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
