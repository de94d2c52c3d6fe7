package service

import (
	"fmt"
	"strings"

	"core/internal/model"
)

// Enrich builds the text actually sent to the backend: the user's text plus
// at most one of each memory clause, in this order:
//
//   - previously explored localities, when this turn matched an area, memory
//     has localities, and the user did not say "compare"
//   - the last backend-confirmed year range, when the user did not mention "year"
//   - the previous comparison, when memory holds one, the user did not say
//     "compare", and this turn matched two or more areas
//
// mem must be the snapshot after this turn's text-derived update.
func Enrich(userText string, currentAreas []string, mem model.SessionMemory) string {
	lower := strings.ToLower(userText)
	mentionsCompare := strings.Contains(lower, "compare")

	var b strings.Builder
	b.WriteString(userText)

	if len(currentAreas) > 0 && len(mem.Localities) > 0 && !mentionsCompare {
		fmt.Fprintf(&b, " (context: previously explored %s)", strings.Join(mem.Localities, ", "))
	}

	if mem.LastYears != nil && !strings.Contains(lower, "year") {
		fmt.Fprintf(&b, " using %d-%d", mem.LastYears.Start, mem.LastYears.End)
	}

	if len(mem.LastCompared) >= 2 && !mentionsCompare && len(currentAreas) >= 2 {
		fmt.Fprintf(&b, " (previous comparison: %s)", strings.Join(mem.LastCompared, " vs "))
	}

	return b.String()
}
