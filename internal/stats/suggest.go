package stats

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/khalidmahamud/voter-info-web/internal/numerals"
	"github.com/khalidmahamud/voter-info-web/model"
)

// SuggestOccupations returns occupations matching query, closest first.
// An empty query returns the most frequent occupations. limit <= 0 means no limit.
func SuggestOccupations(occupations []model.OccupationCount, query string, limit int) []model.OccupationCount {
	query = strings.TrimSpace(numerals.ToArabic(query))
	if query == "" {
		return truncate(occupations, limit)
	}

	targets := make([]string, len(occupations))
	for i, o := range occupations {
		targets[i] = o.Occupation
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	// Ranks sort by distance; frequency breaks ties.
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	result := make([]model.OccupationCount, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, occupations[r.OriginalIndex])
	}
	return truncate(result, limit)
}

func truncate(occupations []model.OccupationCount, limit int) []model.OccupationCount {
	if limit > 0 && len(occupations) > limit {
		occupations = occupations[:limit]
	}
	out := make([]model.OccupationCount, len(occupations))
	copy(out, occupations)
	return out
}
