package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"alumnihub-be/internal/analytics"
	"alumnihub-be/internal/models"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	engine *analytics.Orchestrator
}

func NewAnalyticsHandler(engine *analytics.Orchestrator) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine}
}

// respondError maps the engine taxonomy onto HTTP statuses: malformed window
// parameters are the caller's fault, an unreachable record source is
// retryable, anything else is a plain 500. Failed composites arrive here as
// the failing sub-metric's error; partial results are never sent.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_window", Message: err.Error()})
	case errors.Is(err, analytics.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "source_unavailable", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error", Message: err.Error()})
	}
}

// intQuery parses an optional positive-int query parameter. A malformed value
// is reported as an invalid window rather than silently replaced.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, analytics.ErrInvalidWindow
	}
	return n, nil
}

// GetUserGrowth godoc
// @Summary User growth line chart data
// @Description Monthly new and cumulative user counts over the requested window
// @Tags analytics
// @Security ApiKeyAuth
// @Param months query int false "Window size in months" default(6)
// @Success 200 {object} map[string][]models.GrowthPoint
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/user-growth [get]
func (h *AnalyticsHandler) GetUserGrowth(c *gin.Context) {
	months, err := intQuery(c, "months", 6)
	if err != nil {
		respondError(c, err)
		return
	}
	series, err := h.engine.UserGrowth(c.Request.Context(), months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": series})
}

// GetCategoryDistribution godoc
// @Summary Article category pie chart data
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]analytics.DistributionEntry
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/category-distribution [get]
func (h *AnalyticsHandler) GetCategoryDistribution(c *gin.Context) {
	entries, err := h.engine.CategoryDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GetEngagementMetrics godoc
// @Summary Engagement bar chart data
// @Description Monthly views, reactions and comment totals
// @Tags analytics
// @Security ApiKeyAuth
// @Param months query int false "Window size in months" default(6)
// @Success 200 {object} map[string][]models.EngagementPoint
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/engagement-metrics [get]
func (h *AnalyticsHandler) GetEngagementMetrics(c *gin.Context) {
	months, err := intQuery(c, "months", 6)
	if err != nil {
		respondError(c, err)
		return
	}
	series, err := h.engine.EngagementMetrics(c.Request.Context(), months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": series})
}

// GetAlumniByYear godoc
// @Summary Alumni per graduation year bar chart data
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.YearCount
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/alumni-by-year [get]
func (h *AnalyticsHandler) GetAlumniByYear(c *gin.Context) {
	data, err := h.engine.AlumniByYear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetDepartmentDistribution godoc
// @Summary Alumni department pie chart data with collapsed long tail
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]analytics.DistributionEntry
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/department-distribution [get]
func (h *AnalyticsHandler) GetDepartmentDistribution(c *gin.Context) {
	entries, err := h.engine.DepartmentDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GetRecentActivity godoc
// @Summary Recent activity feed
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.ActivityItem
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/recent-activity [get]
func (h *AnalyticsHandler) GetRecentActivity(c *gin.Context) {
	items, err := h.engine.RecentActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": items})
}

// GetStatsSummary godoc
// @Summary Summary statistics for the stat cards
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} models.StatsSummary
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/stats-summary [get]
func (h *AnalyticsHandler) GetStatsSummary(c *gin.Context) {
	summary, err := h.engine.StatsSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTopArticles godoc
// @Summary Top articles by views and by reactions
// @Tags analytics
// @Security ApiKeyAuth
// @Param limit query int false "Entries per ranking" default(10)
// @Success 200 {object} models.TopArticles
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/top-articles [get]
func (h *AnalyticsHandler) GetTopArticles(c *gin.Context) {
	limit, err := intQuery(c, "limit", 10)
	if err != nil {
		respondError(c, err)
		return
	}
	top, err := h.engine.TopArticles(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

// GetUserActivityHeatmap godoc
// @Summary Login activity heatmap (weekday x hour)
// @Tags analytics
// @Security ApiKeyAuth
// @Param days query int false "Window size in days" default(30)
// @Success 200 {object} map[string]map[string][]int
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/user-activity-heatmap [get]
func (h *AnalyticsHandler) GetUserActivityHeatmap(c *gin.Context) {
	days, err := intQuery(c, "days", 30)
	if err != nil {
		respondError(c, err)
		return
	}
	grid, err := h.engine.ActivityHeatmap(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"heatmap": grid.Rows()})
}

// GetContentPerformance godoc
// @Summary Aggregate content performance metrics
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} models.ContentPerformance
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/analytics/content-performance [get]
func (h *AnalyticsHandler) GetContentPerformance(c *gin.Context) {
	perf, err := h.engine.ContentPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// GetCollectionMetrics godoc
// @Summary Raw collection counts for the ops card
// @Tags analytics
// @Security ApiKeyAuth
// @Success 200 {object} models.CollectionCounts
// @Failure 503 {object} models.ErrorResponse
// @Router /v1/admin/metrics [get]
func (h *AnalyticsHandler) GetCollectionMetrics(c *gin.Context) {
	counts, err := h.engine.CollectionCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
