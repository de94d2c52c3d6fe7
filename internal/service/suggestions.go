package service

import (
	"fmt"
	"strings"

	"core/internal/model"
)

const (
	// MaxSuggestions caps the exploratory prompts shown after a turn
	MaxSuggestions = 5
	// MaxFollowUps caps the area-specific follow-up prompts
	MaxFollowUps = 6
)

var (
	comparisonSuggestions = []string{
		"Which of these localities offers better value for money?",
		"Compare demand trends for these localities over the last 5 years",
		"Which locality has stronger price growth?",
	}
	analysisSuggestions = []string{
		"Show the price trend for the last 5 years",
		"How has demand changed recently?",
		"Is this a good time to invest here?",
	}
	rankingSuggestions = []string{
		"Rank these localities by investment score",
		"Which locality has the lowest risk?",
	}
	fallbackSuggestions = []string{
		"Analyze Wakad",
		"Compare Aundh and Baner",
		"Show price trends in Hinjewadi",
		"Which localities are best for investment?",
	}
)

func singleAreaSuggestions(area string) []string {
	return []string{
		fmt.Sprintf("What is the price forecast for %s?", area),
		fmt.Sprintf("Compare %s with a nearby locality", area),
		fmt.Sprintf("Show demand trends in %s", area),
	}
}

// suggestionSet is an insertion-ordered, deduplicated string list
type suggestionSet struct {
	items []string
	seen  map[string]bool
}

func newSuggestionSet() *suggestionSet {
	return &suggestionSet{items: []string{}, seen: map[string]bool{}}
}

func (s *suggestionSet) add(values ...string) {
	for _, v := range values {
		if s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}

func (s *suggestionSet) capped(n int) []string {
	if len(s.items) > n {
		return s.items[:n]
	}
	return s.items
}

// Suggestions derives exploratory prompts from the user's last text and the
// backend response. Every rule that fires contributes; the fallback set is
// used only when none did. The result is deduplicated and capped at
// MaxSuggestions.
func Suggestions(lastUserText string, resp *model.AnalyticsResponse) []string {
	lower := strings.ToLower(lastUserText)
	set := newSuggestionSet()

	if strings.Contains(lower, "compare") {
		set.add(comparisonSuggestions...)
	}
	if strings.Contains(lower, "analyze") {
		set.add(analysisSuggestions...)
	}

	areas := resp.AreaCount()
	if areas == 1 {
		set.add(singleAreaSuggestions(resp.Areas[0])...)
	}
	if areas > 2 {
		set.add(rankingSuggestions...)
	}

	if len(set.items) == 0 {
		set.add(fallbackSuggestions...)
	}

	return set.capped(MaxSuggestions)
}

var intentFollowUps = map[model.AnalysisIntent]func(area string) []string{
	model.AnalysisComparison: func(area string) []string {
		return []string{
			fmt.Sprintf("How does %s rank against similar localities?", area),
			fmt.Sprintf("Which is more affordable than %s?", area),
		}
	},
	model.AnalysisForecasting: func(area string) []string {
		return []string{
			fmt.Sprintf("What will prices in %s look like next year?", area),
			fmt.Sprintf("How reliable is the forecast for %s?", area),
		}
	},
	model.AnalysisInvestment: func(area string) []string {
		return []string{
			fmt.Sprintf("What is the investment score of %s?", area),
			fmt.Sprintf("What are the risks of investing in %s?", area),
		}
	},
	model.AnalysisTrend: func(area string) []string {
		return []string{
			fmt.Sprintf("Is the growth in %s accelerating?", area),
			fmt.Sprintf("When did %s see its strongest growth?", area),
		}
	},
}

// FollowUps builds area-specific follow-up prompts from the first matched
// area: three generic prompts, two for the analysis intent, then one each for
// price and demand depending on the metric. Capped at MaxFollowUps.
func FollowUps(areas []string, metric model.Metric, intent model.AnalysisIntent) []string {
	if len(areas) == 0 {
		return []string{}
	}
	area := areas[0]

	out := []string{
		fmt.Sprintf("Tell me more about %s", area),
		fmt.Sprintf("Show the last 5 years for %s", area),
		fmt.Sprintf("Compare %s with another locality", area),
	}

	if build, ok := intentFollowUps[intent]; ok {
		out = append(out, build(area)...)
	}

	if metric == model.MetricPrice || metric == model.MetricBoth {
		out = append(out, fmt.Sprintf("What is the average price per sq ft in %s?", area))
	}
	if metric == model.MetricDemand || metric == model.MetricBoth {
		out = append(out, fmt.Sprintf("How many units were sold in %s?", area))
	}

	if len(out) > MaxFollowUps {
		out = out[:MaxFollowUps]
	}
	return out
}
