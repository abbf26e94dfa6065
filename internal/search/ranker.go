package search

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/khalidmahamud/voter-info-web/internal/fuzzy"
	"github.com/khalidmahamud/voter-info-web/internal/tokenizer"
)

// Ranker turns a raw query into an ordered result list.
type Ranker interface {
	Rank(idx *Index, query string) []RankedResult
}

// CompositeRanker ranks in two tiers.
//
// The whole normalized query is matched first; those records lead the result
// in their own order. Every other record is scored by summing, over the
// distinct query tokens, specificity(token) * (1 - distance) where
// specificity is 1/sqrt(records matched by the token). Token matches worse
// than the quality gate are ignored, and aggregated records scoring below
// CutoffRatio of the best one are dropped.
type CompositeRanker struct{}

// DefaultRanker is the ranker used by Search.
var DefaultRanker Ranker = CompositeRanker{}

// Search ranks the index for query using DefaultRanker. It never fails; an
// empty, blank or too-short query yields an empty slice.
func Search(idx *Index, query string) []RankedResult {
	return DefaultRanker.Rank(idx, query)
}

// Rank implements Ranker.
func (CompositeRanker) Rank(idx *Index, query string) []RankedResult {
	if idx.Len() == 0 {
		return []RankedResult{}
	}

	normalized := tokenizer.NormalizeQuery(query)
	tokens := tokenizer.Tokenize(normalized, idx.settings.MinTokenLength)
	if len(tokens) == 0 {
		return []RankedResult{}
	}

	phrase := idx.FuzzySearch(normalized)
	results := make([]RankedResult, 0, len(phrase))
	inPhrase := make(map[int]bool, len(phrase))
	for _, m := range phrase {
		inPhrase[m.Position] = true
		results = append(results, RankedResult{
			Record:   idx.records[m.Position],
			Position: m.Position,
			Score:    1 - m.Score,
			Distance: m.Score,
			Phrase:   true,
			Matches:  m.Matches,
		})
	}
	// A lone token would repeat the whole-query pass. Repeated tokens still
	// take the token path, searched once each.
	if len(tokens) == 1 {
		return results
	}

	passes := idx.tokenPasses(tokenizer.Distinct(tokens))
	aggregated := aggregate(passes, inPhrase, idx.settings.QualityGate)
	aggregated = applyCutoff(aggregated, idx.settings.CutoffRatio)

	for _, c := range aggregated {
		results = append(results, RankedResult{
			Record:   idx.records[c.position],
			Position: c.position,
			Score:    c.score,
			Distance: c.distance,
			Matches:  c.matches,
		})
	}
	return results
}

// tokenPasses runs one fuzzy pass per token, concurrently when allowed.
// The result is indexed by token position.
func (idx *Index) tokenPasses(tokens []string) [][]Match {
	passes := make([][]Match, len(tokens))
	if idx.settings.Parallelism <= 1 || len(tokens) == 1 {
		for i, tok := range tokens {
			passes[i] = idx.FuzzySearch(tok)
		}
		return passes
	}

	var g errgroup.Group
	g.SetLimit(idx.settings.Parallelism)
	for i, tok := range tokens {
		i, tok := i, tok
		g.Go(func() error {
			passes[i] = idx.FuzzySearch(tok)
			return nil
		})
	}
	_ = g.Wait() // passes never fail
	return passes
}

// Specificity weighs a token by how many records it matched.
func Specificity(total int) float64 {
	if total <= 0 {
		return 0
	}
	return 1 / math.Sqrt(float64(total))
}

// aggregate sums token contributions per record, skipping excluded records
// and matches above the gate. The result is sorted best first.
func aggregate(passes [][]Match, excluded map[int]bool, gate float64) []candidate {
	byPosition := make(map[int]*candidate)
	order := make([]*candidate, 0)

	for _, matches := range passes {
		weight := Specificity(len(matches))
		for _, m := range matches {
			if excluded[m.Position] || m.Score > gate {
				continue
			}
			c, ok := byPosition[m.Position]
			if !ok {
				c = &candidate{position: m.Position, distance: m.Score, matches: map[string][]fuzzy.Span{}}
				byPosition[m.Position] = c
				order = append(order, c)
			}
			c.score += weight * (1 - m.Score)
			if m.Score < c.distance {
				c.distance = m.Score
			}
			for field, spans := range m.Matches {
				c.matches[field] = append(c.matches[field], spans...)
			}
		}
	}

	result := make([]candidate, len(order))
	for i, c := range order {
		result[i] = *c
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.position < b.position
	})
	return result
}

// applyCutoff drops candidates scoring below ratio times the best score,
// keeping the order of the rest. The best candidate always survives.
func applyCutoff(candidates []candidate, ratio float64) []candidate {
	if len(candidates) == 0 {
		return candidates
	}
	top := candidates[0].score
	for _, c := range candidates[1:] {
		if c.score > top {
			top = c.score
		}
	}
	floor := top * ratio
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.score >= floor {
			kept = append(kept, c)
		}
	}
	return kept
}
