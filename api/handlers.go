package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/khalidmahamud/voter-info-web/internal/logger"
	"github.com/khalidmahamud/voter-info-web/internal/metrics"
	"github.com/khalidmahamud/voter-info-web/internal/stats"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

const defaultSuggestionLimit = 20

// API holds dependencies for API handlers, primarily the ward directory.
type API struct {
	directory services.Directory
	logger    *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(directory services.Directory, log *zap.Logger) *API {
	return &API{
		directory: directory,
		logger:    logger.OrNop(log),
	}
}

// RouterConfig tunes NewRouter.
type RouterConfig struct {
	MaxBodyBytes int64 // 0 disables the request size limit
}

// NewRouter builds a gin engine with the standard middleware stack and every
// route registered.
func NewRouter(directory services.Directory, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(log),
		RecoveryMiddleware(log),
		metrics.Middleware(),
		CORSMiddleware(),
	)
	if cfg.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	}
	SetupRoutes(router, directory, log)
	return router
}

// SetupRoutes defines all the API routes for the voter directory.
func SetupRoutes(router *gin.Engine, directory services.Directory, log *zap.Logger) {
	apiHandler := NewAPI(directory, log)

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	wardRoutes := router.Group("/wards")
	{
		wardRoutes.GET("", apiHandler.ListWardsHandler)                          // List wards with totals
		wardRoutes.GET("/:wardNo", apiHandler.GetWardHandler)                    // Ward summary and statistics
		wardRoutes.GET("/:wardNo/stats", apiHandler.GetWardStatsHandler)         // Ward statistics
		wardRoutes.GET("/:wardNo/occupations", apiHandler.GetOccupationsHandler) // Occupation facet and suggestions
		wardRoutes.POST("/:wardNo/_search", apiHandler.SearchHandler)            // Ranked search with filters
		wardRoutes.POST("/:wardNo/_multi_search", apiHandler.MultiSearchHandler) // Several named searches
		wardRoutes.GET("/:wardNo/export", apiHandler.ExportHandler)              // CSV or JSON download
	}

	adminRoutes := router.Group("/admin")
	{
		adminRoutes.POST("/reload", apiHandler.ReloadHandler) // Re-read the dataset file
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "voter-directory",
		"wards":     len(api.directory.ListWards()),
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	})
}

// ListWardsHandler returns the summary of every ward.
func (api *API) ListWardsHandler(c *gin.Context) {
	wards := api.directory.ListWards()
	c.JSON(http.StatusOK, gin.H{
		"wards": wards,
		"total": len(wards),
	})
}

// resolveWard validates the ward path parameter and looks the ward up,
// sending an error response when it fails.
func (api *API) resolveWard(c *gin.Context) (services.WardAccessor, bool) {
	wardKey := c.Param("wardNo")
	if result := ValidateWardKey(wardKey); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return nil, false
	}

	ward, err := api.directory.Ward(wardKey)
	if err != nil {
		SendServiceError(c, "get ward", err)
		return nil, false
	}
	return ward, true
}

// WardResponse is the detail view of a ward.
type WardResponse struct {
	Ward  model.WardSummary `json:"ward"`
	Stats model.Stats       `json:"stats"`
}

// GetWardHandler returns the summary and statistics of a ward.
func (api *API) GetWardHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, WardResponse{
		Ward:  ward.Summary(),
		Stats: ward.Stats(),
	})
}

// GetWardStatsHandler returns the statistics of a ward.
func (api *API) GetWardStatsHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ward.Stats())
}

// GetOccupationsHandler returns the ward's occupations, fuzzy matched
// against ?q= when given. ?limit= caps the list.
func (api *API) GetOccupationsHandler(c *gin.Context) {
	ward, ok := api.resolveWard(c)
	if !ok {
		return
	}

	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxSuggestionLimit {
			result := &ValidationResult{Valid: true}
			result.AddError("limit", "Limit must be a number between 1 and "+strconv.Itoa(MaxSuggestionLimit))
			SendStructuredValidationError(c, result)
			return
		}
		limit = n
	}

	query := c.Query("q")
	result := &ValidationResult{Valid: true}
	if ValidateQueryString("q", query, result); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"occupations": stats.SuggestOccupations(ward.Occupations(), query, limit),
	})
}

// ReloadHandler re-reads the dataset and swaps in fresh indexes. The
// previous data stays in service when the reload fails.
func (api *API) ReloadHandler(c *gin.Context) {
	startTime := time.Now()
	if err := api.directory.Reload(c.Request.Context()); err != nil {
		logger.FromContext(c.Request.Context()).Error("reload requested over HTTP failed", zap.Error(err))
		SendError(c, http.StatusInternalServerError, ErrorCodeReloadFailed,
			"Dataset reload failed, previous data is still served: "+err.Error())
		return
	}

	wards := api.directory.ListWards()
	c.JSON(http.StatusOK, gin.H{
		"status":  "reloaded",
		"wards":   len(wards),
		"took_ms": time.Since(startTime).Milliseconds(),
	})
}
