package search

import (
	"github.com/khalidmahamud/voter-info-web/internal/fuzzy"
	"github.com/khalidmahamud/voter-info-web/model"
)

// Match is one record found by a single fuzzy pass.
type Match struct {
	Position int                     // position of the record in the index
	Score    float64                 // weighted distance in [0,1], lower is better
	Matches  map[string][]fuzzy.Span // matched spans per field
}

// RankedResult is a record in final ranking order.
type RankedResult struct {
	Record   model.Record            `json:"record"`
	Position int                     `json:"-"`
	Score    float64                 `json:"score"`    // composite score, higher is better
	Distance float64                 `json:"distance"` // best weighted distance seen for the record
	Phrase   bool                    `json:"phrase"`   // found by the whole-query pass
	Matches  map[string][]fuzzy.Span `json:"matches,omitempty"`
}

// candidate accumulates per-token contributions for one record.
type candidate struct {
	position int
	score    float64
	distance float64
	matches  map[string][]fuzzy.Span
}
