package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/khalidmahamud/voter-info-web/internal/logger"
	"github.com/khalidmahamud/voter-info-web/internal/metrics"
	"github.com/khalidmahamud/voter-info-web/internal/tokenizer"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

const (
	defaultPageSize = 25
	maxPageSize     = 500
)

// ServiceConfig tunes a Service. Zero values select defaults.
type ServiceConfig struct {
	Ward            string // label used in logs and metrics
	DefaultPageSize int
	MaxPageSize     int
	CacheSize       int    // ranked results kept per normalized query, 0 disables
	Ranker          Ranker // nil selects DefaultRanker
}

// Service implements search, filtering, sorting and pagination over one index.
// It fulfills the services.Searcher and services.MultiSearcher interfaces.
type Service struct {
	index  *Index
	ranker Ranker
	cache  *lru.Cache[string, []RankedResult]
	cfg    ServiceConfig
	logger *zap.Logger
}

// NewService creates a new search Service.
func NewService(idx *Index, cfg ServiceConfig, log *zap.Logger) (*Service, error) {
	if idx == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = maxPageSize
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	if cfg.Ward == "" {
		cfg.Ward = model.AllWards
	}

	s := &Service{
		index:  idx,
		ranker: cfg.Ranker,
		cfg:    cfg,
		logger: logger.OrNop(log).With(zap.String("ward", cfg.Ward)),
	}
	if s.ranker == nil {
		s.ranker = DefaultRanker
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, []RankedResult](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Index returns the index the service searches.
func (s *Service) Index() *Index {
	return s.index
}

// Search performs a search operation based on the query.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	results, mode, err := s.collect(query)
	if err != nil {
		return services.SearchResult{}, err
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	total := len(results)
	hits := make([]services.Hit, 0, pageSize)
	if start := (page - 1) * pageSize; start < total {
		end := min(start+pageSize, total)
		for _, r := range results[start:end] {
			hits = append(hits, services.Hit{
				Record:   r.Record,
				Score:    r.Score,
				Distance: r.Distance,
				Phrase:   r.Phrase,
				Matches:  r.Matches,
			})
		}
	}

	took := time.Since(startTime)
	metrics.ObserveSearch(s.cfg.Ward, mode, took, total)

	queryID := uuid.New().String()
	s.logger.Debug("search completed",
		zap.String("query_id", queryID),
		zap.String("query", query.QueryString),
		zap.String("mode", mode),
		zap.Int("total", total),
		zap.Duration("took", took),
	)

	return services.SearchResult{
		Hits:     hits,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Took:     took.Milliseconds(),
		QueryId:  queryID,
	}, nil
}

// Matching returns every record the query selects, in result order.
func (s *Service) Matching(query services.SearchQuery) ([]model.Record, error) {
	results, _, err := s.collect(query)
	if err != nil {
		return nil, err
	}
	records := make([]model.Record, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	return records, nil
}

// collect ranks or browses, then filters and sorts.
func (s *Service) collect(query services.SearchQuery) ([]RankedResult, string, error) {
	filter, err := compileFilters(query.Filters)
	if err != nil {
		return nil, "", err
	}
	order, err := compileSort(query.SortBy, query.Desc)
	if err != nil {
		return nil, "", err
	}

	results, mode := s.rank(query.QueryString)
	if !filter.isEmpty() {
		filtered := make([]RankedResult, 0, len(results))
		for _, r := range results {
			if filter.matches(&r.Record) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if order != nil {
		// results may be shared with the cache
		sorted := make([]RankedResult, len(results))
		copy(sorted, results)
		order.sort(sorted)
		results = sorted
	}
	return results, mode, nil
}

// rank returns ranked results, or every record in index order when the query
// has no searchable token.
func (s *Service) rank(query string) ([]RankedResult, string) {
	normalized := tokenizer.NormalizeQuery(query)
	if len(tokenizer.Tokenize(normalized, s.index.settings.MinTokenLength)) == 0 {
		return s.browse(), "browse"
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(normalized); ok {
			metrics.ObserveCache(true)
			return cached, "ranked"
		}
		metrics.ObserveCache(false)
	}

	results := s.ranker.Rank(s.index, normalized)
	if s.cache != nil {
		s.cache.Add(normalized, results)
	}
	return results, "ranked"
}

func (s *Service) browse() []RankedResult {
	results := make([]RankedResult, len(s.index.records))
	for i := range s.index.records {
		results[i] = RankedResult{Record: s.index.records[i], Position: i}
	}
	return results
}
