package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetDashboardStats returns overall dashboard statistics
// @Summary Get dashboard statistics
// @Description Assessment counts, completion rate and score metrics
// @Tags dashboard
// @Produce json
// @Param course_id query string false "Restrict to one course"
// @Success 200 {object} services.DashboardStatsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.service.GetDashboardStats(c.Request.Context(), courseFilter(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetQuestionDistribution returns question counts by type
// @Summary Get question distribution
// @Tags dashboard
// @Produce json
// @Param course_id query string false "Restrict to one course"
// @Success 200 {array} services.QuestionDistributionResponse
// @Router /dashboard/question-distribution [get]
func (h *DashboardHandler) GetQuestionDistribution(c *gin.Context) {
	distribution, err := h.service.GetQuestionDistribution(c.Request.Context(), courseFilter(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

func courseFilter(c *gin.Context) *string {
	if courseID := c.Query("course_id"); courseID != "" {
		return &courseID
	}
	return nil
}
