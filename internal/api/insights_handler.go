package api

import (
	"net/http"

	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// InsightsHandler serves aggregated metrics and trend comparisons.
type InsightsHandler struct {
	insightsService service.InsightsService
}

func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetMetrics godoc
// @Summary Totals for a date range
// @Description Without start and end the trailing 7 days are used.
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} service.MetricsReport
// @Failure 400 {object} gin.H "Invalid range"
// @Router /insights/metrics [get]
func (h *InsightsHandler) GetMetrics(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}
	report, err := h.insightsService.Metrics(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetTrends godoc
// @Summary Week-over-week and month-over-month trends
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TrendsReport
// @Router /insights/trends [get]
func (h *InsightsHandler) GetTrends(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	report, err := h.insightsService.Trends(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
