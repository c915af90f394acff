package engine

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rshade/carbonwise/internal/engine/batch"
	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// Recommendation limits.
const (
	// MaxRecommendCandidates bounds how many filtered candidates are
	// evaluated per request.
	MaxRecommendCandidates = 1000

	// DefaultRecommendBatchSize is the number of candidates evaluated
	// between progress updates.
	DefaultRecommendBatchSize = 100

	// DefaultTopN is the result count used when a request asks for none.
	DefaultTopN = 3
)

// RecommendFilters narrows the candidate set before any calculation.
type RecommendFilters struct {
	// Powertrain is an exact powertrain label; empty keeps every type.
	Powertrain vehicle.Powertrain `json:"powertrain,omitempty"`
	// MaxPrice rejects vehicles above the budget and vehicles without a
	// listed price.
	MaxPrice *float64 `json:"max_price,omitempty"`
	// BodyType is a case-insensitive substring of the body type.
	BodyType string `json:"body_type,omitempty"`
}

// RecommendRequest describes a driver profile and search constraints.
type RecommendRequest struct {
	DailyKm float64          `json:"daily_km"`
	Years   float64          `json:"years"`
	Filters RecommendFilters `json:"filters"`
	Country string           `json:"country"`
	Year    int              `json:"year"`
	TopN    int              `json:"top_n"`
}

// Recommendation is one ranked vehicle.
type Recommendation struct {
	Rank       int                `json:"rank"`
	Vehicle    string             `json:"vehicle"`
	Brand      string             `json:"brand"`
	Model      string             `json:"model"`
	Year       int                `json:"year"`
	Powertrain vehicle.Powertrain `json:"powertrain"`

	OperationalGPerKm   float64 `json:"operational_g_per_km"`
	ManufacturingGPerKm float64 `json:"manufacturing_g_per_km"`
	TotalGPerKm         float64 `json:"total_g_per_km"`

	// PersonalizedTotalKg is the footprint over the driver's own distance.
	PersonalizedTotalKg     float64 `json:"personalized_total_kg"`
	PersonalizedTotalTonnes float64 `json:"personalized_total_tonnes"`
}

// RecommendReport is a ranking together with how the candidate set was
// processed.
type RecommendReport struct {
	Recommendations []Recommendation `json:"recommendations"`

	// Candidates is the size of the filtered set before the processing cap.
	Candidates int `json:"candidates"`
	// Considered is how many candidates were handed to the calculator.
	Considered int `json:"considered"`
	// Ranked is how many candidates produced a lifecycle result.
	Ranked int `json:"ranked"`
	// Truncated reports that the cap dropped candidates.
	Truncated bool `json:"truncated"`
	// Limit is the processing cap in effect.
	Limit int `json:"limit"`
}

// Recommend ranks catalog vehicles by lifecycle g/km for the request and
// returns up to TopN entries, preferring one per powertrain. It never
// fails: vehicles that cannot be calculated are skipped and an empty
// slice is returned when nothing survives.
func (e *Engine) Recommend(ctx context.Context, req RecommendRequest) []Recommendation {
	return e.RecommendReport(ctx, req).Recommendations
}

// RecommendReport is Recommend with the processing metadata attached.
func (e *Engine) RecommendReport(ctx context.Context, req RecommendRequest) RecommendReport {
	log := logging.FromContext(ctx)

	topN := req.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	candidates := filterCandidates(e.Catalog().All(), req.Filters)
	report := RecommendReport{Candidates: len(candidates), Limit: e.maxCandidates}
	if len(candidates) > e.maxCandidates {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "recommend").
			Int("candidates", len(candidates)).
			Int("limit", e.maxCandidates).
			Msg("candidate set truncated to processing budget")
		candidates = candidates[:e.maxCandidates]
		report.Truncated = true
	}
	report.Considered = len(candidates)

	ranked := make([]Recommendation, 0, len(candidates))
	if len(candidates) == 0 {
		report.Recommendations = ranked
		return report
	}

	proc, err := batch.NewProcessor[vehicle.Vehicle](min(e.batchSize, batch.MaxBatchSize))
	if err != nil {
		proc = batch.NewProcessorWithDefaults[vehicle.Vehicle]()
	}
	proc.WithProgressCallback(func(p batch.Progress) {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "recommend").
			Int("processed", p.ProcessedItems).
			Int("total", p.TotalItems).
			Float64("percent", p.PercentComplete()).
			Msg("recommendation progress")
	})

	err = proc.Process(ctx, candidates, func(ctx context.Context, items []vehicle.Vehicle, _ int) error {
		for _, v := range items {
			if v.Type == vehicle.EV && !v.HasConsumption() {
				continue
			}
			lc, lcErr := e.Lifecycle(ctx, v, req.Country, req.Year)
			if lcErr != nil {
				continue
			}
			ranked = append(ranked, newRecommendation(v, lc, req.DailyKm, req.Years))
		}
		return nil
	})
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "recommend").
			Err(err).
			Int("evaluated", len(ranked)).
			Msg("recommendation interrupted, ranking partial results")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalGPerKm < ranked[j].TotalGPerKm
	})

	out := diversify(ranked, topN)

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "recommend").
		Int("evaluated", len(ranked)).
		Int("returned", len(out)).
		Msg("recommendations ranked")

	report.Recommendations = out
	report.Ranked = len(ranked)
	return report
}

func filterCandidates(all []vehicle.Vehicle, f RecommendFilters) []vehicle.Vehicle {
	bodyType := strings.ToLower(strings.TrimSpace(f.BodyType))

	out := make([]vehicle.Vehicle, 0, len(all))
	for _, v := range all {
		if f.Powertrain != "" && v.Type != f.Powertrain {
			continue
		}
		if f.MaxPrice != nil && (v.Price == nil || *v.Price > *f.MaxPrice) {
			continue
		}
		if bodyType != "" && !strings.Contains(strings.ToLower(v.BodyType), bodyType) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func newRecommendation(v vehicle.Vehicle, lc LifecycleResult, dailyKm, years float64) Recommendation {
	grams := lc.TotalGPerKm * dailyKm * daysPerYear * years
	return Recommendation{
		Vehicle:                 v.Label(),
		Brand:                   lc.Brand,
		Model:                   lc.Model,
		Year:                    lc.Year,
		Powertrain:              lc.Powertrain,
		OperationalGPerKm:       lc.OperationalGPerKm,
		ManufacturingGPerKm:     lc.ManufacturingGPerKm,
		TotalGPerKm:             lc.TotalGPerKm,
		PersonalizedTotalKg:     round2(grams / gramsPerKg),
		PersonalizedTotalTonnes: math.Round(grams/gramsPerT*1000) / 1000,
	}
}

// diversify picks the best vehicle of each powertrain first, then fills
// the remaining slots in rank order. ranked must already be sorted.
func diversify(ranked []Recommendation, topN int) []Recommendation {
	out := make([]Recommendation, 0, min(topN, len(ranked)))
	picked := make([]bool, len(ranked))
	seen := make(map[vehicle.Powertrain]bool)

	for i, r := range ranked {
		if len(out) >= topN {
			break
		}
		if seen[r.Powertrain] {
			continue
		}
		seen[r.Powertrain] = true
		picked[i] = true
		out = append(out, r)
	}

	for i, r := range ranked {
		if len(out) >= topN {
			break
		}
		if picked[i] {
			continue
		}
		out = append(out, r)
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
