package services

import (
	"context"

	"github.com/khalidmahamud/voter-info-web/internal/fuzzy"
	"github.com/khalidmahamud/voter-info-web/model"
)

// Gender filter values.
const (
	GenderAll    = "all"
	GenderFemale = string(model.GenderFemale)
	GenderMale   = string(model.GenderMale)
)

// Filters narrows a search to records with matching attributes.
// Zero values disable a filter.
type Filters struct {
	Gender        string   `json:"gender,omitempty"`          // "all", "female" or "male"
	Occupations   []string `json:"occupations,omitempty"`     // exact occupations, any of
	Address       string   `json:"address,omitempty"`         // case-insensitive substring
	BirthYearFrom int      `json:"birth_year_from,omitempty"` // inclusive
	BirthYearTo   int      `json:"birth_year_to,omitempty"`   // inclusive
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return (f.Gender == "" || f.Gender == GenderAll) &&
		len(f.Occupations) == 0 &&
		f.Address == "" &&
		f.BirthYearFrom == 0 &&
		f.BirthYearTo == 0
}

// Hit is a single record in the search results.
type Hit struct {
	Record   model.Record            `json:"record"`
	Score    float64                 `json:"score"`    // composite relevance, higher is better
	Distance float64                 `json:"distance"` // best fuzzy distance, lower is better
	Phrase   bool                    `json:"phrase"`   // matched the whole query
	Matches  map[string][]fuzzy.Span `json:"matches,omitempty"`
}

type SearchResult struct {
	Hits     []Hit  `json:"hits"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Took     int64  `json:"took"`     // milliseconds
	QueryId  string `json:"query_id"` // unique UUID for this search query
}

type SearchQuery struct {
	QueryString string  `json:"query"`
	Filters     Filters `json:"filters"`
	SortBy      string  `json:"sort_by,omitempty"` // column to order by instead of relevance
	Desc        bool    `json:"desc,omitempty"`
	Page        int     `json:"page,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// MultiSearchQuery represents a request to execute multiple named search queries
type MultiSearchQuery struct {
	Queries  []NamedSearchQuery `json:"queries"`
	Page     int                `json:"page,omitempty"`
	PageSize int                `json:"page_size,omitempty"`
}

// NamedSearchQuery represents a single named search query within a multi-search request
type NamedSearchQuery struct {
	Name    string  `json:"name"`
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
	SortBy  string  `json:"sort_by,omitempty"`
	Desc    bool    `json:"desc,omitempty"`
}

// MultiSearchResult represents the response from a multi-search operation
type MultiSearchResult struct {
	Results          map[string]SearchResult `json:"results"`
	TotalQueries     int                     `json:"total_queries"`
	ProcessingTimeMs float64                 `json:"processing_time_ms"`
}

// Searcher defines operations for querying a ward
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
	// Matching returns every record matching the query and filters, in result
	// order, without pagination.
	Matching(query SearchQuery) ([]model.Record, error)
}

// MultiSearcher defines operations for performing multiple queries in a single request
type MultiSearcher interface {
	MultiSearch(ctx context.Context, query MultiSearchQuery) (*MultiSearchResult, error)
}

// WardAccessor exposes one ward, or the whole dataset, to callers.
type WardAccessor interface {
	Searcher
	MultiSearcher
	Summary() model.WardSummary
	Records() []model.Record
	Stats() model.Stats
	Occupations() []model.OccupationCount
}

// Directory resolves wards by their key.
type Directory interface {
	// Ward returns the accessor for a ward number or model.AllWards.
	Ward(key string) (WardAccessor, error)
	ListWards() []model.WardSummary
	Reload(ctx context.Context) error
}
