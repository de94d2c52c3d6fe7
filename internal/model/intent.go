package model

// Metric is the analytics dimension a query asks about
type Metric string

const (
	MetricPrice  Metric = "price"
	MetricDemand Metric = "demand"
	MetricBoth   Metric = "both"
)

// ParseMetric converts free-form input into a Metric, reporting whether it was recognised
func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricPrice, MetricDemand, MetricBoth:
		return Metric(s), true
	}
	return "", false
}

// IntentClass is the coarse goal of a turn, produced by the last-match-wins intent rules
type IntentClass string

const (
	IntentGeneral           IntentClass = "general"
	IntentCompareLocalities IntentClass = "compare_localities"
	IntentInvestment        IntentClass = "investment"
	IntentTrend             IntentClass = "trend"
	IntentForecast          IntentClass = "forecast"
)

// AnalysisIntent is the richer label used by the conversational-memory flow
// (first-match-wins rules)
type AnalysisIntent string

const (
	AnalysisComparison  AnalysisIntent = "comparison"
	AnalysisForecasting AnalysisIntent = "forecasting"
	AnalysisInvestment  AnalysisIntent = "investment"
	AnalysisTrend       AnalysisIntent = "trend-analysis"
	AnalysisPrice       AnalysisIntent = "price-analysis"
	AnalysisDemand      AnalysisIntent = "demand-analysis"
	AnalysisGeneral     AnalysisIntent = "general"
)

// Tone is the register applied to the narrative answer
type Tone string

const (
	ToneSupportive   Tone = "supportive"
	ToneAnalytical   Tone = "analytical"
	ToneProfessional Tone = "professional"
	ToneNeutral      Tone = "neutral"
)

// YearRange is a pair of years. Start is not guaranteed to be <= End when
// the pair was extracted from user text; the order is kept as written.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParsedIntent is the structured reading of one user turn
type ParsedIntent struct {
	Class     IntentClass    `json:"intent"`
	Analysis  AnalysisIntent `json:"analysis"`
	Areas     []string       `json:"areas"`
	YearRange *YearRange     `json:"year_range,omitempty"`
	Metric    Metric         `json:"metric"` // classifier guess, independent of the user's metric control
}
