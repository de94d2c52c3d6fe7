package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

// DecodeLenient decodes a JSON payload produced by a backend that does not
// always emit strict JSON. It tolerates:
// - NaN / Infinity / -Infinity literals (pandas statistics), decoded as null
// - a UTF-8 BOM, stray control characters, or text around the object
func DecodeLenient(data []byte, target interface{}) error {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	cleaned := removeControlCharacters(strings.TrimPrefix(input, "\ufeff"))
	cleaned = replaceNonFiniteNumbers(cleaned)
	if err := json.Unmarshal([]byte(cleaned), target); err == nil {
		return nil
	}

	// Try to find JSON object/array in text
	if extracted := extractJSONFromText(cleaned); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", TruncateString(input, 100))
}

// replaceNonFiniteNumbers rewrites bare NaN, Infinity and -Infinity values
// outside of strings to null
func replaceNonFiniteNumbers(input string) string {
	var result strings.Builder
	result.Grow(len(input))

	inString := false
	escape := false
	prev := byte(0) // last non-space byte written outside strings

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inString {
			result.WriteByte(ch)
			if escape {
				escape = false
			} else if ch == '\\' {
				escape = true
			} else if ch == '"' {
				inString = false
				prev = ch
			}
			continue
		}

		if ch == '"' {
			inString = true
			result.WriteByte(ch)
			continue
		}

		if prev == ':' || prev == '[' || prev == ',' || prev == 0 {
			if token := nonFiniteAt(input[i:]); token != "" {
				result.WriteString("null")
				i += len(token) - 1
				prev = 'l'
				continue
			}
		}

		result.WriteByte(ch)
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			prev = ch
		}
	}

	return result.String()
}

// nonFiniteAt returns the non-finite literal at the start of s, if any
func nonFiniteAt(s string) string {
	for _, token := range []string{"-Infinity", "Infinity", "NaN"} {
		if strings.HasPrefix(s, token) {
			rest := s[len(token):]
			if rest == "" || strings.ContainsRune(",]} \t\r\n", rune(rest[0])) {
				return token
			}
		}
	}
	return ""
}

// extractJSONFromText finds JSON object or array in surrounding text
func extractJSONFromText(input string) string {
	// Try to find JSON object
	if start := strings.Index(input, "{"); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '{', '}'); extracted != "" {
			return extracted
		}
	}

	// Try to find JSON array
	if start := strings.Index(input, "["); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '[', ']'); extracted != "" {
			return extracted
		}
	}

	return ""
}

// extractBalancedBraces extracts content with balanced braces
func extractBalancedBraces(input string, open, close rune) string {
	if len(input) == 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		if ch == '\\' {
			escape = true
			continue
		}

		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// removeControlCharacters removes non-printable control characters
func removeControlCharacters(input string) string {
	return controlChars.ReplaceAllString(input, "")
}

// TruncateString truncates a string to at most maxLen bytes, marking the cut
// with "...". The cut never splits a UTF-8 sequence.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
