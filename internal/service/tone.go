package service

import (
	"regexp"
	"strings"

	"core/internal/model"
)

// keywordGlyph maps a domain keyword to the glyph appended after it
type keywordGlyph struct {
	word    string
	glyph   string
	pattern *regexp.Regexp
}

// Applied in this order, one keyword at a time.
var keywordGlyphs = compileGlyphs([][2]string{
	{"rising", "📈"},
	{"increasing", "📈"},
	{"growth", "🌱"},
	{"demand", "🔥"},
	{"falling", "📉"},
	{"decline", "📉"},
	{"stable", "⚖"},
	{"risk", "⚠"},
	{"opportunity", "💡"},
	{"investment", "💰"},
	{"price", "💲"},
	{"future", "🔮"},
	{"strong", "💪"},
})

func compileGlyphs(pairs [][2]string) []keywordGlyph {
	out := make([]keywordGlyph, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, keywordGlyph{
			word:    p[0],
			glyph:   p[1],
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`),
		})
	}
	return out
}

var registerPreambles = map[model.Tone]string{
	model.ToneSupportive:   "No worries, let's go through this together.\n\n",
	model.ToneAnalytical:   "Here is what the numbers show.\n\n",
	model.ToneProfessional: "From a pricing and investment standpoint:\n\n",
}

// Annotate appends a glyph after each whole-word occurrence of a domain
// keyword and turns sentence breaks into paragraph breaks. Words already
// followed by their glyph are left alone, so Annotate is idempotent.
func Annotate(text string) string {
	for _, kg := range keywordGlyphs {
		text = annotateKeyword(text, kg)
	}
	return strings.ReplaceAll(text, ". ", ".\n\n")
}

func annotateKeyword(text string, kg keywordGlyph) string {
	matches := kg.pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	suffix := " " + kg.glyph
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[1]])
		if !strings.HasPrefix(text[m[1]:], suffix) {
			b.WriteString(suffix)
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// ApplyRegister prepends the preamble for tone; neutral text is unchanged
func ApplyRegister(text string, tone model.Tone) string {
	if preamble, ok := registerPreambles[tone]; ok {
		return preamble + text
	}
	return text
}

// ShapeAnswer annotates the backend summary and applies the register
// detected from the user's text
func ShapeAnswer(summary, userText string) (string, model.Tone) {
	tone := DetectTone(userText)
	return ApplyRegister(Annotate(summary), tone), tone
}
