package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khalidmahamud/voter-info-web/internal/export"
	"github.com/khalidmahamud/voter-info-web/internal/logger"
	"github.com/khalidmahamud/voter-info-web/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query    string            `json:"query"`
	Filters  *services.Filters `json:"filters,omitempty"`
	SortBy   string            `json:"sort_by,omitempty"`
	Desc     bool              `json:"desc,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// MultiSearchRequest represents the JSON request for multi-search
type MultiSearchRequest struct {
	Queries  []NamedSearchRequest `json:"queries"`
	Page     int                  `json:"page,omitempty"`
	PageSize int                  `json:"page_size,omitempty"`
}

// NamedSearchRequest represents a single named search query in the request
type NamedSearchRequest struct {
	Name    string            `json:"name"`
	Query   string            `json:"query"`
	Filters *services.Filters `json:"filters,omitempty"`
	SortBy  string            `json:"sort_by,omitempty"`
	Desc    bool              `json:"desc,omitempty"`
}

// ExportRequest holds the query parameters of an export download.
type ExportRequest struct {
	Format        string   `form:"format"`
	Query         string   `form:"query"`
	Gender        string   `form:"gender"`
	Occupations   []string `form:"occupation"`
	Address       string   `form:"address"`
	BirthYearFrom int      `form:"birth_year_from"`
	BirthYearTo   int      `form:"birth_year_to"`
	SortBy        string   `form:"sort_by"`
	Desc          bool     `form:"desc"`
}

func filtersOrZero(f *services.Filters) services.Filters {
	if f == nil {
		return services.Filters{}
	}
	return *f
}

// SearchHandler handles search requests to a ward.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidQueryError(c, err)
		return
	}
	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results, err := ward.Search(services.SearchQuery{
		QueryString: req.Query,
		Filters:     filtersOrZero(req.Filters),
		SortBy:      req.SortBy,
		Desc:        req.Desc,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		SendServiceError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// MultiSearchHandler handles multi-query search requests to a ward.
// Request Body: MultiSearchRequest
func (api *API) MultiSearchHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}

	var req MultiSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidQueryError(c, err)
		return
	}
	if result := ValidateMultiSearchRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	multiSearchQuery := services.MultiSearchQuery{
		Queries:  make([]services.NamedSearchQuery, 0, len(req.Queries)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	for _, namedReq := range req.Queries {
		multiSearchQuery.Queries = append(multiSearchQuery.Queries, services.NamedSearchQuery{
			Name:    namedReq.Name,
			Query:   namedReq.Query,
			Filters: filtersOrZero(namedReq.Filters),
			SortBy:  namedReq.SortBy,
			Desc:    namedReq.Desc,
		})
	}

	results, err := ward.MultiSearch(c.Request.Context(), multiSearchQuery)
	if err != nil {
		SendServiceError(c, "multi-search", err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportHandler streams every record matching the query parameters as a
// CSV or JSON attachment.
func (api *API) ExportHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}

	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendInvalidQueryError(c, err)
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		SendServiceError(c, "export", err)
		return
	}

	filters := services.Filters{
		Gender:        req.Gender,
		Occupations:   req.Occupations,
		Address:       req.Address,
		BirthYearFrom: req.BirthYearFrom,
		BirthYearTo:   req.BirthYearTo,
	}
	result := &ValidationResult{Valid: true}
	ValidateQueryString("query", req.Query, result)
	ValidateFilters("", filters, result)
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	records, err := ward.Matching(services.SearchQuery{
		QueryString: req.Query,
		Filters:     filters,
		SortBy:      req.SortBy,
		Desc:        req.Desc,
	})
	if err != nil {
		SendServiceError(c, "export", err)
		return
	}

	// Rendered in memory so that failures can still be reported as JSON.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, records); err != nil {
		SendServiceError(c, "export", err)
		return
	}

	filename := export.Filename(export.DefaultPrefix, format, time.Now())
	logger.FromContext(c.Request.Context()).Info("export",
		zap.String("ward", c.Param("wardNo")),
		zap.String("format", format),
		zap.Int("records", len(records)),
	)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
