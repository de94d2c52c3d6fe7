package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testVocabulary = []string{"Wakad", "Aundh", "Baner", "Hinjewadi", "Pimple Saudagar", "Akurdi"}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"wakad", "wakad", 0},
		{"kitten", "sitting", 3},
		{"wakd", "wakad", 1},
		{"banner", "baner", 1},
		{"flaw", "lawn", 2},
		{"aundh", "aunhd", 2},
		{"pune", "punë", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
		})
	}
}

func TestLevenshtein_IdentityAndSymmetry(t *testing.T) {
	words := []string{"", "a", "wakad", "Pimple Saudagar", "compare aundh and baner", "ßüñ"}
	for _, a := range words {
		assert.Equal(t, 0, Levenshtein(a, a), "distance of %q to itself", a)
		for _, b := range words {
			assert.Equal(t, Levenshtein(a, b), Levenshtein(b, a), "symmetry for %q / %q", a, b)
		}
	}
}

func TestMatchLocalities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Empty text",
			text: "",
			want: []string{},
		},
		{
			name: "Single substring match",
			text: "Analyze Wakad",
			want: []string{"Wakad"},
		},
		{
			name: "Vocabulary order, not text order",
			text: "compare baner and aundh",
			want: []string{"Aundh", "Baner"},
		},
		{
			name: "Case insensitive multi-word",
			text: "prices in PIMPLE SAUDAGAR",
			want: []string{"Pimple Saudagar"},
		},
		{
			name: "Short misspelling within distance",
			text: "wakd",
			want: []string{"Wakad"},
		},
		{
			name: "Misspelling inside a sentence does not fuzzy match",
			text: "show me price trends for wakd",
			want: []string{},
		},
		{
			name: "No locality",
			text: "what is the weather like",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocalities(tt.text, testVocabulary))
		})
	}
}

func TestMatchLocalities_SubstringAlwaysIncluded(t *testing.T) {
	texts := []string{"tell me about %s", "%s", "%s vs everything", "compare X with %s please"}
	for _, entry := range testVocabulary {
		for _, tmpl := range texts {
			text := strings.Replace(tmpl, "%s", strings.ToUpper(entry), 1)
			assert.Contains(t, MatchLocalities(text, testVocabulary), entry, "text %q", text)
		}
	}
}

func TestMatchLocalities_WhitespaceIsNotEmpty(t *testing.T) {
	assert.Equal(t, []string{"Ab"}, MatchLocalities("  ", []string{"Ab", "Wakad"}))
}

func TestMatchLocalities_Deduplicates(t *testing.T) {
	vocab := []string{"Wakad", "Wakad", "Baner"}
	assert.Equal(t, []string{"Wakad"}, MatchLocalities("Wakad and Wakad again", vocab))
}

func TestCleanVocabulary(t *testing.T) {
	got := CleanVocabulary([]string{" Wakad ", "Pimple   Saudagar", "", "Wakad", "Baner"})
	assert.Equal(t, []string{"Wakad", "Pimple Saudagar", "Baner"}, got)
}
