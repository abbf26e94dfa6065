package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/services"
)

// MultiSearch executes multiple named search queries in parallel
func (s *Service) MultiSearch(ctx context.Context, multiQuery services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	startTime := time.Now()

	if len(multiQuery.Queries) == 0 {
		return nil, errors.NewValidationError("queries", "at least one query is required")
	}
	seen := make(map[string]bool, len(multiQuery.Queries))
	for _, nq := range multiQuery.Queries {
		if nq.Name == "" {
			return nil, errors.NewValidationError("queries", "each query must have a non-empty name")
		}
		if seen[nq.Name] {
			return nil, errors.NewValidationError("queries", fmt.Sprintf("duplicate query name '%s'", nq.Name))
		}
		seen[nq.Name] = true
	}

	var mu sync.Mutex
	results := make(map[string]services.SearchResult, len(multiQuery.Queries))

	g, gctx := errgroup.WithContext(ctx)
	for _, nq := range multiQuery.Queries {
		nq := nq
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("multi-search cancelled: %w", err)
			}

			result, err := s.Search(services.SearchQuery{
				QueryString: nq.Query,
				Filters:     nq.Filters,
				SortBy:      nq.SortBy,
				Desc:        nq.Desc,
				Page:        multiQuery.Page,
				PageSize:    multiQuery.PageSize,
			})
			if err != nil {
				return fmt.Errorf("error executing query '%s': %w", nq.Name, err)
			}

			mu.Lock()
			results[nq.Name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	processingTime := time.Since(startTime)

	return &services.MultiSearchResult{
		Results:          results,
		TotalQueries:     len(multiQuery.Queries),
		ProcessingTimeMs: float64(processingTime.Nanoseconds()) / 1e6,
	}, nil
}
