package service

import (
	"regexp"
	"strconv"
	"strings"

	"core/internal/model"
)

// rule pairs a predicate over lower-cased text with an outcome
type rule[T any] struct {
	match   func(text string) bool
	outcome T
}

func containsAny(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

// lastMatch evaluates every rule in order; each matching rule reassigns the
// result, so the last matching rule wins
func lastMatch[T any](rules []rule[T], text string, fallback T) T {
	result := fallback
	for _, r := range rules {
		if r.match(text) {
			result = r.outcome
		}
	}
	return result
}

// firstMatch returns the outcome of the first matching rule
func firstMatch[T any](rules []rule[T], text string, fallback T) T {
	for _, r := range rules {
		if r.match(text) {
			return r.outcome
		}
	}
	return fallback
}

// Last-match-wins: "trend" overrides "demand", which overrides "price".
var metricRules = []rule[model.Metric]{
	{containsAny("price"), model.MetricPrice},
	{containsAny("demand"), model.MetricDemand},
	{containsAny("trend"), model.MetricBoth},
}

// Last-match-wins: "forecast" beats "trend" beats "investment" beats "compare".
var intentRules = []rule[model.IntentClass]{
	{containsAny("compare"), model.IntentCompareLocalities},
	{containsAny("investment"), model.IntentInvestment},
	{containsAny("trend"), model.IntentTrend},
	{containsAny("forecast"), model.IntentForecast},
}

// First-match-wins, top-down.
var analysisRules = []rule[model.AnalysisIntent]{
	{containsAny("compare"), model.AnalysisComparison},
	{containsAny("forecast", "predict"), model.AnalysisForecasting},
	{containsAny("investment", "invest"), model.AnalysisInvestment},
	{containsAny("trend", "growth"), model.AnalysisTrend},
	{containsAny("price"), model.AnalysisPrice},
	{containsAny("demand"), model.AnalysisDemand},
}

// First-match-wins.
var toneRules = []rule[model.Tone]{
	{containsAny("confused", "help"), model.ToneSupportive},
	{containsAny("compare", "trend"), model.ToneAnalytical},
	{containsAny("price", "investment"), model.ToneProfessional},
}

var yearPattern = regexp.MustCompile(`20\d\d`)

// Classification is the keyword-derived reading of a text
type Classification struct {
	Metric    model.Metric
	YearRange *model.YearRange
	Class     model.IntentClass
}

// Classify extracts metric, year range and intent class from text
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	return Classification{
		Metric:    DetectMetric(lower),
		YearRange: ExtractYearRange(text),
		Class:     DetectIntentClass(lower),
	}
}

// DetectMetric applies the metric rules; defaults to price
func DetectMetric(text string) model.Metric {
	return lastMatch(metricRules, strings.ToLower(text), model.MetricPrice)
}

// DetectIntentClass applies the intent rules; defaults to general
func DetectIntentClass(text string) model.IntentClass {
	return lastMatch(intentRules, strings.ToLower(text), model.IntentGeneral)
}

// ClassifyAnalysis applies the conversational-memory label rules; defaults to general
func ClassifyAnalysis(text string) model.AnalysisIntent {
	return firstMatch(analysisRules, strings.ToLower(text), model.AnalysisGeneral)
}

// DetectTone picks the answer register from the user's wording
func DetectTone(text string) model.Tone {
	return firstMatch(toneRules, strings.ToLower(text), model.ToneNeutral)
}

// ExtractYearRange returns the first two 20xx tokens in the order written.
// The pair is deliberately not sorted: "from 2024 to 2018" yields (2024, 2018).
func ExtractYearRange(text string) *model.YearRange {
	years := yearPattern.FindAllString(text, -1)
	if len(years) < 2 {
		return nil
	}
	start, _ := strconv.Atoi(years[0])
	end, _ := strconv.Atoi(years[1])
	return &model.YearRange{Start: start, End: end}
}
