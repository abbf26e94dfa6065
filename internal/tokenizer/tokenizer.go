// Package tokenizer normalizes record and query text and splits queries into
// search tokens.
package tokenizer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/khalidmahamud/voter-info-web/internal/numerals"
)

// Normalize folds text into the form used for matching: alternate-script
// digits become ASCII, the result is NFC composed and Unicode case folded.
// Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// Transformers carry state, so each call builds its own chain.
	t := transform.Chain(numerals.Transformer(), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, text)
	if err != nil {
		// Only malformed input can fail here; fall back to the digit fold.
		return strings.ToLower(numerals.ToArabic(text))
	}
	return out
}

// NormalizeQuery normalizes a raw query and collapses every whitespace run
// into a single space, trimming both ends.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(Normalize(query)), " ")
}

// Tokenize splits an already normalized query on whitespace and drops tokens
// shorter than minLen runes. It never returns nil.
func Tokenize(query string, minLen int) []string {
	if minLen < 1 {
		minLen = 1
	}
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Distinct removes repeated tokens, keeping the first occurrence of each.
func Distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	result := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		result = append(result, tok)
	}
	return result
}
