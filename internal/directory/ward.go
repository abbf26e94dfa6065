package directory

import (
	"github.com/khalidmahamud/voter-info-web/internal/search"
	"github.com/khalidmahamud/voter-info-web/model"
)

// Ward holds the search service and precomputed facts of one ward, or of the
// whole dataset. It implements the services.WardAccessor interface.
type Ward struct {
	*search.Service
	summary model.WardSummary
	stats   model.Stats
}

// Summary returns the ward's listing entry.
func (w *Ward) Summary() model.WardSummary {
	return w.summary
}

// Records returns the ward's records in dataset order.
func (w *Ward) Records() []model.Record {
	return w.Index().Records()
}

// Stats returns the statistics computed when the ward was built.
func (w *Ward) Stats() model.Stats {
	return w.stats
}

// Occupations returns the ward's occupations, most frequent first.
func (w *Ward) Occupations() []model.OccupationCount {
	return w.stats.Occupations
}
