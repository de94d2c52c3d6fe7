package service

import (
	"math"
	"sort"
	"strings"

	"core/internal/model"
)

// Highlight constants
const (
	HighlightRisingDemand     = "Rising demand"
	HighlightFallingDemand    = "Falling demand"
	HighlightStrongGrowth     = "Strong price growth"
	HighlightLowRisk          = "Low price volatility"
	HighlightForecastUp       = "Forecast above average price"
	HighlightHighDemandVolume = "High sales volume"
)

// Ranker orders localities by a weighted investment score
type Ranker struct {
	weightGrowth float64
	weightDemand float64
	weightRisk   float64
}

// NewRanker creates a new ranker with specified weights
func NewRanker(weightGrowth, weightDemand, weightRisk float64) *Ranker {
	return &Ranker{
		weightGrowth: weightGrowth,
		weightDemand: weightDemand,
		weightRisk:   weightRisk,
	}
}

// RankAreas returns the investment ranking for a response. The backend's own
// ranked_areas order is kept when present; otherwise areas are scored from
// their per-area growth, demand and risk scores. Every entry gets highlights.
func (r *Ranker) RankAreas(insights *model.Insights) []model.RankedArea {
	if insights == nil || (len(insights.Areas) == 0 && len(insights.RankedAreas) == 0) {
		return []model.RankedArea{}
	}

	var ranked []model.RankedArea
	if len(insights.RankedAreas) > 0 {
		ranked = make([]model.RankedArea, 0, len(insights.RankedAreas))
		for _, ra := range insights.RankedAreas {
			ranked = append(ranked, model.RankedArea{Area: ra.Area, InvestmentScore: ra.InvestmentScore})
		}
	} else {
		ranked = make([]model.RankedArea, 0, len(insights.Areas))
		for area, stats := range insights.Areas {
			ranked = append(ranked, model.RankedArea{
				Area:            area,
				InvestmentScore: r.score(stats),
			})
		}
		// Sort by score descending, name ascending for ties
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].InvestmentScore != ranked[j].InvestmentScore {
				return ranked[i].InvestmentScore > ranked[j].InvestmentScore
			}
			return ranked[i].Area < ranked[j].Area
		})
	}

	for i := range ranked {
		if stats, ok := insights.Areas[ranked[i].Area]; ok {
			ranked[i].Highlights = r.highlights(stats)
		} else {
			ranked[i].Highlights = []string{}
		}
	}

	return ranked
}

// score combines the 0-10 component scores, rounded to one decimal
func (r *Ranker) score(stats model.AreaInsight) float64 {
	s := r.weightGrowth*clampScore(stats.GrowthScore) +
		r.weightDemand*clampScore(stats.DemandScore) +
		r.weightRisk*clampScore(stats.RiskScore)
	return math.Round(s*10) / 10
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// highlights generates human-readable reasons for a locality's position
func (r *Ranker) highlights(stats model.AreaInsight) []string {
	reasons := []string{}

	switch strings.ToLower(stats.DemandTrend) {
	case "rising":
		reasons = append(reasons, HighlightRisingDemand)
	case "falling":
		reasons = append(reasons, HighlightFallingDemand)
	}

	// 10% CAGR or better
	if stats.PriceCAGR >= 0.10 {
		reasons = append(reasons, HighlightStrongGrowth)
	}

	if stats.RiskScore >= 7 {
		reasons = append(reasons, HighlightLowRisk)
	}

	if stats.DemandScore >= 8 {
		reasons = append(reasons, HighlightHighDemandVolume)
	}

	if stats.PriceForecastNextYear != nil && stats.AvgPrice > 0 && *stats.PriceForecastNextYear > stats.AvgPrice {
		reasons = append(reasons, HighlightForecastUp)
	}

	return reasons
}
