package handlers

import (
	"net/http"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/gin-gonic/gin"
)

const trendingLimit = 5

type AnalyticsHandlers struct {
	analytics domain.AnalyticsRepository
}

func NewAnalyticsHandlers(analytics domain.AnalyticsRepository) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: analytics}
}

func (h *AnalyticsHandlers) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		respondRecordError(c, err, "Analytics")
		return
	}
	dashboard.StudentPredictions = nonNil(dashboard.StudentPredictions)
	c.JSON(http.StatusOK, dashboard)
}

func (h *AnalyticsHandlers) SubjectPerformance(c *gin.Context) {
	rows, err := h.analytics.SubjectPerformance(c.Request.Context())
	if err != nil {
		respondRecordError(c, err, "Analytics")
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

func (h *AnalyticsHandlers) TrendingStudents(c *gin.Context) {
	rows, err := h.analytics.TrendingStudents(c.Request.Context(), trendingLimit)
	if err != nil {
		respondRecordError(c, err, "Analytics")
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}
