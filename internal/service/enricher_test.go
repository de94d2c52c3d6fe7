package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"core/internal/model"
)

func memoryWith(localities, compared []string, years *model.YearRange) model.SessionMemory {
	mem := model.NewSessionMemory()
	mem.Localities = localities
	if compared != nil {
		mem.LastCompared = compared
	}
	mem.LastYears = years
	return mem
}

func TestEnrich(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		areas []string
		mem   model.SessionMemory
		want  string
	}{
		{
			name:  "previously explored appended once",
			text:  "Analyze Wakad",
			areas: []string{"Wakad"},
			mem:   memoryWith([]string{"Wakad"}, nil, nil),
			want:  "Analyze Wakad (context: previously explored Wakad)",
		},
		{
			name:  "compare suppresses context",
			text:  "Compare Wakad and Baner",
			areas: []string{"Wakad", "Baner"},
			mem:   memoryWith([]string{"Wakad", "Baner"}, []string{"Wakad", "Baner"}, nil),
			want:  "Compare Wakad and Baner",
		},
		{
			name:  "no areas this turn",
			text:  "what about prices?",
			areas: []string{},
			mem:   memoryWith([]string{"Wakad"}, nil, nil),
			want:  "what about prices?",
		},
		{
			name:  "confirmed years",
			text:  "Show demand",
			areas: []string{},
			mem:   memoryWith([]string{"Wakad"}, nil, &model.YearRange{Start: 2019, End: 2022}),
			want:  "Show demand using 2019-2022",
		},
		{
			name:  "user mentions years",
			text:  "Show demand for last 3 years",
			areas: []string{},
			mem:   memoryWith([]string{"Wakad"}, nil, &model.YearRange{Start: 2019, End: 2022}),
			want:  "Show demand for last 3 years",
		},
		{
			name:  "all clauses in order",
			text:  "Wakad vs Aundh",
			areas: []string{"Wakad", "Aundh"},
			mem:   memoryWith([]string{"Baner", "Wakad", "Aundh"}, []string{"Wakad", "Aundh"}, &model.YearRange{Start: 2020, End: 2024}),
			want:  "Wakad vs Aundh (context: previously explored Baner, Wakad, Aundh) using 2020-2024 (previous comparison: Wakad vs Aundh)",
		},
		{
			name:  "previous comparison needs two areas this turn",
			text:  "Analyze Wakad",
			areas: []string{"Wakad"},
			mem:   memoryWith([]string{"Wakad", "Aundh"}, []string{"Wakad", "Aundh"}, nil),
			want:  "Analyze Wakad (context: previously explored Wakad, Aundh)",
		},
		{
			name:  "guards ignore case",
			text:  "COMPARE Wakad and Aundh over the YEARS",
			areas: []string{"Wakad", "Aundh"},
			mem:   memoryWith([]string{"Wakad", "Aundh"}, []string{"Wakad", "Aundh"}, &model.YearRange{Start: 2020, End: 2024}),
			want:  "COMPARE Wakad and Aundh over the YEARS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enrich(tt.text, tt.areas, tt.mem))
		})
	}
}
