package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/metrics"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
)

type HandlerManager struct {
	serviceManager    services.ServiceManager
	assessmentHandler *AssessmentHandler
	draftHandler      *DraftHandler
	attemptHandler    *AttemptHandler
	resultHandler     *ResultHandler
	dashboardHandler  *DashboardHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:    serviceManager,
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), serviceManager.Export(), logger),
		draftHandler:      NewDraftHandler(serviceManager.Authoring(), logger),
		attemptHandler:    NewAttemptHandler(serviceManager.Attempt(), logger),
		resultHandler:     NewResultHandler(serviceManager.Result(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	faculty := RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin)

	v1 := router.Group("/api/v1")
	v1.Use(IdentityMiddleware())
	{
		// Assessment routes
		assessments := v1.Group("/assessments")
		{
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)

			// Faculty and Admins only
			assessments.GET("/export", faculty, hm.assessmentHandler.ExportResults)
			assessments.DELETE("/:id", faculty, hm.assessmentHandler.DeleteAssessment)
			assessments.PUT("/:id/feedback", faculty, hm.assessmentHandler.SetFeedback)
			assessments.GET("/:id/export", faculty, hm.assessmentHandler.ExportAssessment)
		}

		// Draft routes - Faculty and Admins only
		drafts := v1.Group("/drafts")
		drafts.Use(faculty)
		{
			drafts.GET("", hm.draftHandler.GetDraft)
			drafts.POST("", hm.draftHandler.StartDraft)
			drafts.PUT("", hm.draftHandler.UpdateDraftDetails)
			drafts.DELETE("", hm.draftHandler.DiscardDraft)
			drafts.POST("/questions", hm.draftHandler.AddQuestion)
			drafts.POST("/finalize", hm.draftHandler.Finalize)
		}

		// Attempt routes - Students only
		attempts := v1.Group("/attempts")
		attempts.Use(RequireRoleMiddleware(models.RoleStudent))
		{
			attempts.POST("", hm.attemptHandler.StartAttempt)
			attempts.GET("/current", hm.attemptHandler.GetCurrentAttempt)
			attempts.PUT("/current/answers", hm.attemptHandler.RecordAnswer)
			attempts.POST("/current/submit", hm.attemptHandler.SubmitAttempt)
			attempts.DELETE("/current", hm.attemptHandler.AbandonAttempt)
		}

		// Result routes - any viewer
		results := v1.Group("/results")
		{
			results.GET("/current", hm.resultHandler.GetCurrentResult)
			results.POST("/current/minimize", hm.resultHandler.MinimizeResult)
			results.POST("/current/restore", hm.resultHandler.RestoreResult)
			results.DELETE("/current", hm.resultHandler.CloseResult)
			results.GET("/:id", hm.resultHandler.OpenResult)
		}

		// Dashboard routes - Faculty and Admins only
		dashboard := v1.Group("/dashboard")
		dashboard.Use(faculty)
		{
			dashboard.GET("/stats", hm.dashboardHandler.GetDashboardStats)
			dashboard.GET("/question-distribution", hm.dashboardHandler.GetQuestionDistribution)
		}
	}

	router.GET("/metrics", metrics.PrometheusHandler())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "assessment-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-service",
		})
	})
}
