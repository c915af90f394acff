package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonwise/internal/vehicle"
)

func labels(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Vehicle
	}
	return out
}

func TestEngine_Recommend_Diversity(t *testing.T) {
	e := testEngine()
	recs := e.Recommend(context.Background(), RecommendRequest{
		DailyKm: 40, Years: 2, Country: "US", Year: 2023, TopN: 3,
	})

	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Tesla Model 3 (2023)", "Toyota Camry (2023)", "Toyota Prius (2023)"}, labels(recs))
	for i, r := range recs {
		assert.Equal(t, i+1, r.Rank)
	}

	first := recs[0]
	assert.InDelta(t, 96.77, first.TotalGPerKm, 1e-9)
	assert.InDelta(t, 2825.68, first.PersonalizedTotalKg, 1e-9)
	assert.InDelta(t, 2.826, first.PersonalizedTotalTonnes, 1e-9)
}

func TestEngine_Recommend_FillsAfterDiversity(t *testing.T) {
	recs := testEngine().Recommend(context.Background(), RecommendRequest{
		DailyKm: 40, Years: 1, Country: "US", Year: 2023, TopN: 6,
	})

	// Leaf has no consumption data and Mirai has no operational model.
	assert.Equal(t, []string{
		"Tesla Model 3 (2023)",
		"Toyota Camry (2023)",
		"Toyota Prius (2023)",
		"Toyota RAV4 Prime (2023)",
		"Hyundai Ioniq 5 (2023)",
		"Volkswagen Golf TDI (2023)",
	}, labels(recs))
}

func TestEngine_Recommend_Filters(t *testing.T) {
	e := testEngine()
	ctx := context.Background()

	tests := []struct {
		name    string
		filters RecommendFilters
		want    []string
	}{
		{
			name:    "Powertrain",
			filters: RecommendFilters{Powertrain: vehicle.EV},
			want:    []string{"Tesla Model 3 (2023)", "Hyundai Ioniq 5 (2023)"},
		},
		{
			name:    "BudgetExcludesUnpriced",
			filters: RecommendFilters{MaxPrice: fp(30000)},
			want:    []string{"Toyota Camry (2023)", "Toyota Prius (2023)"},
		},
		{
			name:    "BodyType",
			filters: RecommendFilters{BodyType: "suv"},
			want:    []string{"Hyundai Ioniq 5 (2023)", "Toyota RAV4 Prime (2023)"},
		},
		{
			name:    "NothingMatches",
			filters: RecommendFilters{MaxPrice: fp(1000)},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := e.Recommend(ctx, RecommendRequest{
				DailyKm: 30, Years: 5, Country: "US", Year: 2023, TopN: 5, Filters: tt.filters,
			})
			require.NotNil(t, recs)
			assert.Equal(t, tt.want, labels(recs))
		})
	}
}

func TestEngine_Recommend_DefaultTopN(t *testing.T) {
	recs := testEngine().Recommend(context.Background(), RecommendRequest{
		DailyKm: 30, Years: 5, Country: "US", Year: 2023,
	})
	assert.Len(t, recs, DefaultTopN)
}

func TestEngine_Recommend_GridFailureSkipsEVs(t *testing.T) {
	recs := testEngine().Recommend(context.Background(), RecommendRequest{
		DailyKm: 30, Years: 5, Country: "XX", Year: 2023, TopN: 10,
	})
	for _, r := range recs {
		assert.NotEqual(t, vehicle.EV, r.Powertrain)
	}
	assert.Len(t, recs, 4)
}

func TestEngine_Recommend_CandidateBudget(t *testing.T) {
	// Catalog order puts Camry and Golf first.
	e := testEngine(WithMaxCandidates(2), WithBatchSize(1))
	recs := e.Recommend(context.Background(), RecommendRequest{
		DailyKm: 30, Years: 5, Country: "US", Year: 2023, TopN: 5,
	})
	assert.Equal(t, []string{"Toyota Camry (2023)", "Volkswagen Golf TDI (2023)"}, labels(recs))
}

func TestEngine_RecommendReport(t *testing.T) {
	req := RecommendRequest{DailyKm: 30, Years: 5, Country: "US", Year: 2023, TopN: 5}

	t.Run("Truncated", func(t *testing.T) {
		report := testEngine(WithMaxCandidates(2)).RecommendReport(context.Background(), req)
		assert.True(t, report.Truncated)
		assert.Equal(t, 8, report.Candidates)
		assert.Equal(t, 2, report.Considered)
		assert.Equal(t, 2, report.Limit)
		assert.Equal(t, 2, report.Ranked)
		assert.Len(t, report.Recommendations, 2)
	})

	t.Run("WithinLimit", func(t *testing.T) {
		report := testEngine().RecommendReport(context.Background(), req)
		assert.False(t, report.Truncated)
		assert.Equal(t, MaxRecommendCandidates, report.Limit)
		assert.Equal(t, report.Candidates, report.Considered)
		// Leaf has no consumption data and Mirai has no manufacturing row.
		assert.Equal(t, 6, report.Ranked)
	})
}

func TestEngine_Recommend_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs := testEngine().Recommend(ctx, RecommendRequest{DailyKm: 30, Years: 5, Country: "US", Year: 2023})
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestDiversify(t *testing.T) {
	ranked := []Recommendation{
		{Vehicle: "a", Powertrain: vehicle.EV, TotalGPerKm: 1},
		{Vehicle: "b", Powertrain: vehicle.EV, TotalGPerKm: 2},
		{Vehicle: "c", Powertrain: vehicle.EV, TotalGPerKm: 3},
		{Vehicle: "d", Powertrain: vehicle.ICE, TotalGPerKm: 4},
	}
	assert.Equal(t, []string{"a", "d"}, labels(diversify(ranked, 2)))
	assert.Equal(t, []string{"a", "d", "b"}, labels(diversify(ranked, 3)))
	assert.Empty(t, diversify(nil, 3))
}
