package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"core/internal/model"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestRankAreas_Fallback(t *testing.T) {
	ranker := NewRanker(0.4, 0.4, 0.2)

	insights := &model.Insights{Areas: map[string]model.AreaInsight{
		"Wakad": {GrowthScore: 8, DemandScore: 9, RiskScore: 5, DemandTrend: "Rising", PriceCAGR: 0.12},
		"Aundh": {GrowthScore: 6, DemandScore: 5, RiskScore: 8, AvgPrice: 9000, PriceForecastNextYear: float64Ptr(9500)},
		"Baner": {GrowthScore: 6, DemandScore: 5, RiskScore: 8, DemandTrend: "Falling"},
	}}

	ranked := ranker.RankAreas(insights)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Wakad", ranked[0].Area)
	assert.InDelta(t, 7.8, ranked[0].InvestmentScore, 1e-9)
	assert.Equal(t, []string{HighlightRisingDemand, HighlightStrongGrowth, HighlightHighDemandVolume}, ranked[0].Highlights)

	// ties broken by name
	assert.Equal(t, "Aundh", ranked[1].Area)
	assert.Equal(t, "Baner", ranked[2].Area)
	assert.InDelta(t, 6.0, ranked[1].InvestmentScore, 1e-9)
	assert.Equal(t, []string{HighlightLowRisk, HighlightForecastUp}, ranked[1].Highlights)
	assert.Equal(t, []string{HighlightFallingDemand, HighlightLowRisk}, ranked[2].Highlights)
}

func TestRankAreas_KeepsBackendOrder(t *testing.T) {
	ranker := NewRanker(0.4, 0.4, 0.2)

	insights := &model.Insights{
		Areas: map[string]model.AreaInsight{
			"Wakad": {GrowthScore: 10, DemandScore: 10, RiskScore: 10},
		},
		RankedAreas: []model.RankedArea{
			{Area: "Baner", InvestmentScore: 7.1},
			{Area: "Wakad", InvestmentScore: 6.4},
		},
	}

	ranked := ranker.RankAreas(insights)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Baner", ranked[0].Area)
	assert.Equal(t, 7.1, ranked[0].InvestmentScore)
	assert.Empty(t, ranked[0].Highlights)
	assert.Equal(t, "Wakad", ranked[1].Area)
	assert.NotEmpty(t, ranked[1].Highlights)
}

func TestRankAreas_Empty(t *testing.T) {
	ranker := NewRanker(0.4, 0.4, 0.2)
	assert.Empty(t, ranker.RankAreas(nil))
	assert.Empty(t, ranker.RankAreas(&model.Insights{}))
}

func TestScore_ClampsComponents(t *testing.T) {
	ranker := NewRanker(0.4, 0.4, 0.2)
	assert.InDelta(t, 10.0, ranker.score(model.AreaInsight{GrowthScore: 15, DemandScore: 12, RiskScore: 11}), 1e-9)
	assert.InDelta(t, 0.0, ranker.score(model.AreaInsight{GrowthScore: -3}), 1e-9)
}
