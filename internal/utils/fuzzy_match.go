package utils

import (
	"strings"
)

// MaxEditDistance is the largest Levenshtein distance accepted as a fuzzy match
const MaxEditDistance = 3

// MatchLocalities returns the vocabulary entries mentioned in text.
//
// An entry matches when its lower-cased form is a substring of the lower-cased
// text, or when the edit distance between the whole text and the entry is at
// most MaxEditDistance. The distance is taken over the full strings, not per
// token, so the fuzzy branch only fires for very short texts such as a bare
// misspelt locality name.
//
// Results keep vocabulary order and contain no duplicates. Only the empty
// text short-circuits; whitespace is compared like any other text.
//
// Cost is O(len(vocabulary) * len(text) * len(entry)) per call with no early
// exit, which is fine for a few hundred short names and short chat turns but
// does not scale to large vocabularies.
func MatchLocalities(text string, vocabulary []string) []string {
	matches := []string{}
	if text == "" {
		return matches
	}

	textLower := strings.ToLower(text)
	seen := make(map[string]bool, len(vocabulary))

	for _, entry := range vocabulary {
		if seen[entry] {
			continue
		}
		entryLower := strings.ToLower(entry)
		if entryLower == "" {
			continue
		}

		// Substring match short-circuits the distance computation
		if strings.Contains(textLower, entryLower) || Levenshtein(textLower, entryLower) <= MaxEditDistance {
			seen[entry] = true
			matches = append(matches, entry)
		}
	}

	return matches
}

// Levenshtein returns the edit distance between a and b, where insertion,
// deletion and substitution each cost 1. It fills the full dynamic-programming
// matrix and compares runes, not bytes.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[len(ra)][len(rb)]
}

// NormalizeLocality trims and collapses whitespace in a locality name so
// vocabulary entries from the backend compare consistently
func NormalizeLocality(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// CleanVocabulary normalizes names, drops empties and duplicates, and keeps
// first-seen order
func CleanVocabulary(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = NormalizeLocality(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
