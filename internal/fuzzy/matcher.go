package fuzzy

import (
	"math"
	"sort"
)

// epsilon replaces an exact score of zero so key weights still order exact
// matches.
const epsilon = 2.220446049250313e-16

// Span is an inclusive range of rune offsets into a field's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// KeyMatch describes how one key of an entry matched.
type KeyMatch struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"` // unweighted score in [0,1]
	Span  Span    `json:"span"`
}

// Result is an entry that matched on at least one key.
type Result struct {
	Index   int        // position of the entry in the searched slice
	Score   float64    // best weighted key score, lower is better
	Matches []KeyMatch // matched keys in key order
}

// Matcher searches entries for a pattern. It is immutable and safe for
// concurrent use.
type Matcher struct {
	keys    []Key
	weights []float64
	opts    Options
}

// NewMatcher validates keys and options and returns a Matcher.
func NewMatcher(keys []Key, opts Options) (*Matcher, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	weights, err := normalizeWeights(keys)
	if err != nil {
		return nil, err
	}
	k := make([]Key, len(keys))
	copy(k, keys)
	return &Matcher{keys: k, weights: weights, opts: opts}, nil
}

// Search returns every entry matching pattern, best score first. Entries with
// equal scores keep their input order. An empty pattern matches nothing.
func (m *Matcher) Search(entries []Entry, pattern string) []Result {
	p := []rune(pattern)
	if len(p) == 0 || len(entries) == 0 {
		return []Result{}
	}

	var s scratch
	results := make([]Result, 0)
	for i := range entries {
		if r, ok := m.matchEntry(&entries[i], p, &s); ok {
			r.Index = i
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score < results[b].Score
	})
	return results
}

// score matches a single entry. It reports false when no key matches.
func (m *Matcher) score(entry Entry, pattern string) (Result, bool) {
	p := []rune(pattern)
	if len(p) == 0 {
		return Result{}, false
	}
	var s scratch
	return m.matchEntry(&entry, p, &s)
}

func (m *Matcher) matchEntry(entry *Entry, pattern []rune, s *scratch) (Result, bool) {
	best := math.Inf(1)
	var matches []KeyMatch

	for k := range m.keys {
		if k >= len(entry.Fields) {
			break
		}
		field := &entry.Fields[k]
		if field.Empty() {
			continue
		}

		raw, span, ok := m.matchField(pattern, field.runes, s)
		if !ok {
			continue
		}

		base := raw
		if base == 0 {
			base = epsilon
		}
		adjusted := math.Pow(base, m.weights[k]*field.Norm)
		if adjusted < best {
			best = adjusted
		}
		matches = append(matches, KeyMatch{Key: m.keys[k].Name, Score: raw, Span: span})
	}

	if len(matches) == 0 {
		return Result{}, false
	}
	return Result{Score: best, Matches: matches}, true
}

// matchField returns the unweighted score of pattern inside text.
func (m *Matcher) matchField(pattern, text []rune, s *scratch) (float64, Span, bool) {
	window := text
	if !m.opts.IgnoreLocation {
		if limit := m.opts.Distance + len(pattern); limit < len(window) {
			window = window[:limit]
		}
	}

	loc := locate(pattern, window, s)
	if loc.end < loc.start {
		return 0, Span{}, false
	}

	score := float64(loc.errors) / float64(len(pattern))
	if !m.opts.IgnoreLocation {
		score += float64(loc.start) / float64(m.opts.Distance)
	}
	if score > 1 {
		score = 1
	}
	if score > m.opts.Threshold {
		return 0, Span{}, false
	}

	span := Span{Start: loc.start, End: loc.end}
	if span.End-span.Start+1 < m.opts.MinMatchCharLength {
		return 0, Span{}, false
	}
	return score, span, true
}
