package search

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

func newTestService(t *testing.T, records []model.Record, cfg ServiceConfig) *Service {
	t.Helper()
	svc, err := NewService(buildIndex(t, records, nil), cfg, nil)
	require.NoError(t, err)
	return svc
}

func hitIDs(hits []services.Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Record.ID
	}
	return ids
}

// countingRanker records how often it ranks.
type countingRanker struct {
	calls atomic.Int32
}

func (r *countingRanker) Rank(idx *Index, query string) []RankedResult {
	r.calls.Add(1)
	return DefaultRanker.Rank(idx, query)
}

func TestNewService(t *testing.T) {
	t.Run("nil index", func(t *testing.T) {
		_, err := NewService(nil, ServiceConfig{}, nil)
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		svc := newTestService(t, directoryRecords(), ServiceConfig{})
		assert.Equal(t, 25, svc.cfg.DefaultPageSize)
		assert.Equal(t, 500, svc.cfg.MaxPageSize)
		assert.Equal(t, model.AllWards, svc.cfg.Ward)
		assert.Nil(t, svc.cache)
	})
}

func TestService_Search(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{Ward: "1"})

	result, err := svc.Search(services.SearchQuery{QueryString: "Abdul Karim"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "1", result.Hits[0].Record.ID)
	assert.True(t, result.Hits[0].Phrase)
	assert.Equal(t, len(result.Hits), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 25, result.PageSize)

	_, err = uuid.Parse(result.QueryId)
	assert.NoError(t, err, "query id should be a UUID")
}

func TestService_BrowseWithoutTokens(t *testing.T) {
	records := directoryRecords()
	svc := newTestService(t, records, ServiceConfig{})

	for _, q := range []string{"", "  ", "a"} {
		result, err := svc.Search(services.SearchQuery{QueryString: q})
		require.NoError(t, err)
		assert.Equal(t, len(records), result.Total, "query %q", q)
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, hitIDs(result.Hits), "query %q", q)
	}
}

func TestService_Pagination(t *testing.T) {
	records := make([]model.Record, 30)
	for i := range records {
		records[i] = voter(fmt.Sprint(i+1), fmt.Sprintf("voter %d", i+1))
	}
	svc := newTestService(t, records, ServiceConfig{MaxPageSize: 20})

	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
		wantHits     int
		wantFirstID  string
	}{
		{"defaults clamp to max", 0, 0, 1, 20, 20, "1"},
		{"second page", 2, 10, 2, 10, 10, "11"},
		{"partial last page", 4, 8, 4, 8, 6, "25"},
		{"past the end", 5, 10, 5, 10, 0, ""},
		{"oversized page clamps", 1, 1000, 1, 20, 20, "1"},
		{"negative page", -3, 5, 1, 5, 5, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(services.SearchQuery{Page: tt.page, PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Equal(t, 30, result.Total)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, tt.wantPageSize, result.PageSize)
			require.Len(t, result.Hits, tt.wantHits)
			assert.NotNil(t, result.Hits)
			if tt.wantHits > 0 {
				assert.Equal(t, tt.wantFirstID, result.Hits[0].Record.ID)
			}
		})
	}
}

func TestService_Filters(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{})

	tests := []struct {
		name    string
		query   string
		filters services.Filters
		want    []string
	}{
		{"female only", "", services.Filters{Gender: "female"}, []string{"4", "5"}},
		{"all genders", "", services.Filters{Gender: "all"}, []string{"1", "2", "3", "4", "5", "6"}},
		{"occupations any of", "", services.Filters{Occupations: []string{"teacher", "কৃষক"}}, []string{"2", "6"}},
		{"address substring ignores case", "", services.Filters{Address: "ROAD 12"}, []string{"1", "4"}},
		{"address with bengali digits", "", services.Filters{Address: "রোড 12"}, []string{"5"}},
		{"birth year range", "", services.Filters{BirthYearFrom: 1975, BirthYearTo: 1990}, []string{"1", "2", "3"}},
		{"birth year lower bound only", "", services.Filters{BirthYearFrom: 1991}, []string{"4"}},
		{"combined", "", services.Filters{Gender: "male", Address: "mirpur"}, []string{"1", "2"}},
		{"filters keep relevance order", "abdul karim", services.Filters{Address: "road 12"}, []string{"1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(services.SearchQuery{QueryString: tt.query, Filters: tt.filters})
			require.NoError(t, err)
			assert.Equal(t, tt.want, hitIDs(result.Hits))
			assert.Equal(t, len(tt.want), result.Total)
		})
	}
}

func TestService_InvalidQueries(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{})

	tests := []struct {
		name  string
		query services.SearchQuery
	}{
		{"unknown gender", services.SearchQuery{Filters: services.Filters{Gender: "other"}}},
		{"inverted year range", services.SearchQuery{Filters: services.Filters{BirthYearFrom: 2000, BirthYearTo: 1990}}},
		{"negative year", services.SearchQuery{Filters: services.Filters{BirthYearTo: -1}}},
		{"unknown sort field", services.SearchQuery{SortBy: "ward"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(tt.query)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

			_, err = svc.Matching(tt.query)
			assert.Error(t, err)
		})
	}
}

func TestService_Sorting(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{})

	tests := []struct {
		name   string
		sortBy string
		desc   bool
		want   []string
	}{
		{"serial numeric across scripts", "serial", false, []string{"1", "4", "2", "3", "6", "5"}},
		{"serial descending", "sl_no", true, []string{"5", "6", "3", "2", "1", "4"}},
		{"voter number", "voter_no", false, []string{"1", "2", "3", "4", "5", "6"}},
		{"date of birth, unknown last", "dob", false, []string{"5", "2", "1", "3", "4", "6"}},
		{"name", "name", false, []string{"2", "1", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(services.SearchQuery{SortBy: tt.sortBy, Desc: tt.desc})
			require.NoError(t, err)
			ids := hitIDs(result.Hits)
			if tt.sortBy == "name" {
				// Latin names only; script order is up to the collator.
				ids = filterIDs(ids, "1", "2", "3", "4")
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func filterIDs(ids []string, keep ...string) []string {
	set := make(map[string]bool, len(keep))
	for _, k := range keep {
		set[k] = true
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}

func TestService_SortingDoesNotDisturbCache(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{CacheSize: 8})

	relevance, err := svc.Search(services.SearchQuery{QueryString: "abdul karim"})
	require.NoError(t, err)

	_, err = svc.Search(services.SearchQuery{QueryString: "abdul karim", SortBy: "name", Desc: true})
	require.NoError(t, err)

	again, err := svc.Search(services.SearchQuery{QueryString: "abdul karim"})
	require.NoError(t, err)
	assert.Equal(t, hitIDs(relevance.Hits), hitIDs(again.Hits))
}

func TestService_Cache(t *testing.T) {
	ranker := &countingRanker{}
	svc := newTestService(t, directoryRecords(), ServiceConfig{CacheSize: 4, Ranker: ranker})

	for _, q := range []string{"Abdul Karim", "  abdul   KARIM ", "abdul karim"} {
		_, err := svc.Search(services.SearchQuery{QueryString: q})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), ranker.calls.Load(), "normalized queries share one cache entry")

	_, err := svc.Search(services.SearchQuery{QueryString: "rahima"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), ranker.calls.Load())

	// Browsing never ranks.
	_, err = svc.Search(services.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), ranker.calls.Load())
}

func TestService_WithoutCacheRanksEveryTime(t *testing.T) {
	ranker := &countingRanker{}
	svc := newTestService(t, directoryRecords(), ServiceConfig{Ranker: ranker})

	for i := 0; i < 3; i++ {
		_, err := svc.Search(services.SearchQuery{QueryString: "karim"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), ranker.calls.Load())
}

func TestService_Matching(t *testing.T) {
	records := make([]model.Record, 40)
	for i := range records {
		records[i] = voter(fmt.Sprint(i+1), fmt.Sprintf("voter %d", i+1))
	}
	svc := newTestService(t, records, ServiceConfig{})

	matched, err := svc.Matching(services.SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, matched, 40, "matching ignores pagination")

	matched, err = svc.Matching(services.SearchQuery{QueryString: "voter 17"})
	require.NoError(t, err)
	require.NotEmpty(t, matched)
	assert.Equal(t, "17", matched[0].ID)
}

func TestService_MultiSearch(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{})

	result, err := svc.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries: []services.NamedSearchQuery{
			{Name: "karim", Query: "abdul karim"},
			{Name: "women", Filters: services.Filters{Gender: "female"}},
		},
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalQueries)
	require.Contains(t, result.Results, "karim")
	require.Contains(t, result.Results, "women")
	assert.Equal(t, "1", result.Results["karim"].Hits[0].Record.ID)
	assert.Equal(t, []string{"4", "5"}, hitIDs(result.Results["women"].Hits))
	assert.Equal(t, 10, result.Results["women"].PageSize)
}

func TestService_MultiSearchErrors(t *testing.T) {
	svc := newTestService(t, directoryRecords(), ServiceConfig{})

	tests := []struct {
		name    string
		queries []services.NamedSearchQuery
	}{
		{"no queries", nil},
		{"empty name", []services.NamedSearchQuery{{Name: "", Query: "karim"}}},
		{"duplicate names", []services.NamedSearchQuery{{Name: "a", Query: "karim"}, {Name: "a", Query: "abdul"}}},
		{"invalid filter", []services.NamedSearchQuery{{Name: "a", Filters: services.Filters{Gender: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MultiSearch(context.Background(), services.MultiSearchQuery{Queries: tt.queries})
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.MultiSearch(ctx, services.MultiSearchQuery{
			Queries: []services.NamedSearchQuery{{Name: "a", Query: "karim"}},
		})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, context.Canceled))
	})
}
