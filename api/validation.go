// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/khalidmahamud/voter-info-web/services"
)

// Request limits.
const (
	MaxQueryLength       = 200
	MaxOccupationFilters = 50
	MaxMultiSearchQueries = 20
	MaxSuggestionLimit   = 100
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateWardKey validates a ward path parameter
func ValidateWardKey(ward string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if ward == "" {
		result.AddError("wardNo", "Ward number is required")
		return result
	}

	if strings.TrimSpace(ward) != ward {
		result.AddError("wardNo", "Ward number cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateQueryString checks the length of a free-text query
func ValidateQueryString(field, query string, result *ValidationResult) {
	if n := utf8.RuneCountInString(query); n > MaxQueryLength {
		result.AddError(field, fmt.Sprintf("Query is too long (%d characters, maximum %d)", n, MaxQueryLength))
	}
}

// ValidateFilters checks filter values that can be rejected before searching
func ValidateFilters(prefix string, f services.Filters, result *ValidationResult) {
	if len(f.Occupations) > MaxOccupationFilters {
		result.AddError(prefix+"occupations", fmt.Sprintf("At most %d occupations can be selected", MaxOccupationFilters))
	}
	if f.BirthYearFrom < 0 {
		result.AddError(prefix+"birth_year_from", "Birth year cannot be negative")
	}
	if f.BirthYearTo < 0 {
		result.AddError(prefix+"birth_year_to", "Birth year cannot be negative")
	}
}

// ValidatePagination validates pagination parameters. Zero selects defaults.
func ValidatePagination(page, pageSize int, result *ValidationResult) {
	if page < 0 {
		result.AddError("page", "Page number cannot be negative")
	}
	if pageSize < 0 {
		result.AddError("page_size", "Page size cannot be negative")
	}
}

// ValidateSearchRequest validates a single search request
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	ValidateQueryString("query", req.Query, result)
	if req.Filters != nil {
		ValidateFilters("filters.", *req.Filters, result)
	}
	ValidatePagination(req.Page, req.PageSize, result)

	return result
}

// ValidateMultiSearchRequest validates a multi-search request
func ValidateMultiSearchRequest(req *MultiSearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Queries) == 0 {
		result.AddError("queries", "At least one query is required")
		return result
	}
	if len(req.Queries) > MaxMultiSearchQueries {
		result.AddError("queries", fmt.Sprintf("At most %d queries are allowed", MaxMultiSearchQueries))
	}

	names := make(map[string]bool, len(req.Queries))
	for i, q := range req.Queries {
		field := fmt.Sprintf("queries[%d]", i)
		if strings.TrimSpace(q.Name) == "" {
			result.AddError(field+".name", "All queries must have a non-empty name")
		} else if names[q.Name] {
			result.AddError(field+".name", "Query names must be unique: '"+q.Name+"' appears multiple times")
		}
		names[q.Name] = true

		ValidateQueryString(field+".query", q.Query, result)
		if q.Filters != nil {
			ValidateFilters(field+".filters.", *q.Filters, result)
		}
	}
	ValidatePagination(req.Page, req.PageSize, result)

	return result
}
