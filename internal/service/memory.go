package service

import (
	"core/internal/model"
)

// Turn carries the user-side signals of one turn that feed session memory
type Turn struct {
	Areas          []string     // localities matched in the user's text
	SelectedMetric model.Metric // state of the metric control, not the classifier's guess
}

// UpdateMemory applies the text-derived memory rules and returns the next
// snapshot. prev is left untouched.
//
//  1. localities grow by this turn's areas (never shrink)
//  2. the preferred metric follows the metric control
//  3. lastCompared is replaced only when this turn matched two or more areas
func UpdateMemory(prev model.SessionMemory, turn Turn) model.SessionMemory {
	next := prev.Clone()
	next.Version = prev.Version + 1

	for _, area := range turn.Areas {
		if !next.HasLocality(area) {
			next.Localities = append(next.Localities, area)
		}
	}

	if turn.SelectedMetric != "" {
		next.PreferredMetric = turn.SelectedMetric
	}

	if len(turn.Areas) >= 2 {
		next.LastCompared = append([]string{}, turn.Areas...)
	}

	return next
}

// ConfirmYears applies the backend-derived rule: when the response carries a
// two-year range, it always replaces lastYears. Otherwise prev is returned
// unchanged.
func ConfirmYears(prev model.SessionMemory, resp *model.AnalyticsResponse) model.SessionMemory {
	years := resp.ConfirmedYears()
	if years == nil {
		return prev
	}
	next := prev.Clone()
	next.Version = prev.Version + 1
	next.LastYears = years
	return next
}
