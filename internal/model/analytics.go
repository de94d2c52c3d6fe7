package model

import "encoding/json"

// QueryRequest is the body sent to the analytics backend query endpoint
type QueryRequest struct {
	Message string `json:"message"`
	Metric  Metric `json:"metric"`
}

// AnalyticsResponse is the backend's answer to a query. Only the fields the
// conversation core reads are typed; chart and table are passed through.
type AnalyticsResponse struct {
	Summary   string    `json:"summary"`
	Areas     []string  `json:"areas"`
	Cities    []string  `json:"cities"`
	Metric    Metric    `json:"metric,omitempty"`
	YearRange []int     `json:"year_range,omitempty"`
	Insights  *Insights `json:"insights,omitempty"`
	Chart     *Chart    `json:"chart,omitempty"`
	Table     []JSONMap `json:"table,omitempty"`
}

// ConfirmedYears returns the backend-parsed year range, or nil unless the
// backend sent exactly two years
func (r *AnalyticsResponse) ConfirmedYears() *YearRange {
	if r == nil || len(r.YearRange) != 2 {
		return nil
	}
	return &YearRange{Start: r.YearRange[0], End: r.YearRange[1]}
}

// AreaCount returns the number of areas the backend resolved
func (r *AnalyticsResponse) AreaCount() int {
	if r == nil {
		return 0
	}
	return len(r.Areas)
}

// Insights holds per-area statistics and the backend's investment ranking
type Insights struct {
	Areas       map[string]AreaInsight `json:"areas"`
	RankedAreas []RankedArea           `json:"ranked_areas"`
}

// AreaInsight represents the computed statistics of one locality
type AreaInsight struct {
	YearStart             int      `json:"year_start"`
	YearEnd               int      `json:"year_end"`
	AvgPrice              float64  `json:"avg_price"`
	MinPrice              *float64 `json:"min_price,omitempty"`
	MaxPrice              *float64 `json:"max_price,omitempty"`
	PriceCAGR             float64  `json:"price_cagr"`
	PriceVolatility       *float64 `json:"price_volatility,omitempty"`
	AvgDemand             *float64 `json:"avg_demand,omitempty"`
	TotalDemand           *float64 `json:"total_demand,omitempty"`
	DemandTrend           string   `json:"demand_trend"`
	PriceForecastNextYear *float64 `json:"price_forecast_next_year,omitempty"`
	GrowthScore           float64  `json:"growth_score"`
	DemandScore           float64  `json:"demand_score"`
	RiskScore             float64  `json:"risk_score"`
	InvestmentScore       float64  `json:"investment_score"`
}

// RankedArea is one entry of the investment ranking
type RankedArea struct {
	Area            string   `json:"area"`
	InvestmentScore float64  `json:"investment_score"`
	Highlights      []string `json:"highlights,omitempty"`
}

// Chart is the year-indexed series payload for the presentation layer
type Chart struct {
	Labels   []json.Number `json:"labels"`
	Datasets []Dataset     `json:"datasets"`
}

// Dataset is one chart series; missing years are null
type Dataset struct {
	Label  string     `json:"label"`
	Metric Metric     `json:"metric,omitempty"`
	Data   []*float64 `json:"data"`
}

// LocalitiesResponse is the backend's locality list
type LocalitiesResponse struct {
	Localities []string `json:"localities"`
}

// JSONMap is one row of the backend's tabular result
type JSONMap map[string]interface{}
