package service

import (
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

// IntentParser turns free text into a ParsedIntent using the locality
// vocabulary of one session and the keyword rule sets
type IntentParser struct {
	vocabulary []string
}

// NewIntentParser creates a parser over a session's vocabulary. An empty
// vocabulary is valid; entity matching then finds nothing.
func NewIntentParser(vocabulary []string) *IntentParser {
	return &IntentParser{
		vocabulary: vocabulary,
	}
}

// Parse extracts areas, metric, year range and both intent labels from text.
// Matching and classification are independent pure functions of the text.
func (p *IntentParser) Parse(text string) *model.ParsedIntent {
	text = strings.TrimSpace(text)
	if text == "" {
		return &model.ParsedIntent{
			Class:    model.IntentGeneral,
			Analysis: model.AnalysisGeneral,
			Areas:    []string{},
			Metric:   model.MetricPrice,
		}
	}

	classification := Classify(text)

	return &model.ParsedIntent{
		Class:     classification.Class,
		Analysis:  ClassifyAnalysis(text),
		Areas:     utils.MatchLocalities(text, p.vocabulary),
		YearRange: classification.YearRange,
		Metric:    classification.Metric,
	}
}
