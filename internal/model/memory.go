package model

// SessionMemory is one immutable snapshot of the conversational context.
// Each turn produces a new snapshot with an incremented Version; snapshots
// are never modified in place.
type SessionMemory struct {
	Version         int        `json:"version"`
	Localities      []string   `json:"localities"`    // ordered set, only ever grows
	PreferredMetric Metric     `json:"preferred_metric"`
	LastCompared    []string   `json:"last_compared"` // last turn with >= 2 matched localities
	LastYears       *YearRange `json:"last_years,omitempty"`
}

// NewSessionMemory returns the empty snapshot a session starts with
func NewSessionMemory() SessionMemory {
	return SessionMemory{
		Localities:      []string{},
		PreferredMetric: MetricPrice,
		LastCompared:    []string{},
	}
}

// HasLocality reports whether name was mentioned earlier in the session
func (m SessionMemory) HasLocality(name string) bool {
	for _, l := range m.Localities {
		if l == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so the caller can derive a new snapshot
func (m SessionMemory) Clone() SessionMemory {
	out := m
	out.Localities = append([]string{}, m.Localities...)
	out.LastCompared = append([]string{}, m.LastCompared...)
	if m.LastYears != nil {
		yr := *m.LastYears
		out.LastYears = &yr
	}
	return out
}
