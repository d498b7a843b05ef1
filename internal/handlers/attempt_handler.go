package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttempt opens the student's attempt on a pending assessment
// @Summary Start attempt
// @Description Starts taking an assessment; any previous in-progress answers are discarded
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt body validator.StartAttemptRequest true "Assessment to take"
// @Success 201 {object} services.AttemptView
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Assessment already completed"
// @Router /attempts [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req validator.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Starting attempt", "assessment_id", req.AssessmentID)

	view, err := h.attemptService.Start(c.Request.Context(), user, req.AssessmentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *AttemptHandler) GetCurrentAttempt(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	view, err := h.attemptService.Current(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RecordAnswer records or replaces the answer to one question
// @Summary Record answer
// @Tags attempts
// @Accept json
// @Produce json
// @Param answer body validator.RecordAnswerRequest true "Answer"
// @Success 200 {object} services.AttemptView
// @Failure 400 {object} ErrorResponse
// @Router /attempts/current/answers [put]
func (h *AttemptHandler) RecordAnswer(c *gin.Context) {
	var req validator.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	view, err := h.attemptService.RecordAnswer(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitAttempt scores the attempt and completes the assessment
// @Summary Submit attempt
// @Tags attempts
// @Produce json
// @Success 200 {object} services.SubmissionResult
// @Failure 422 {object} ErrorResponse "Unanswered questions remain"
// @Router /attempts/current/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting attempt")

	result, err := h.attemptService.Submit(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AbandonAttempt exits without submitting. Requires ?confirm=true.
func (h *AttemptHandler) AbandonAttempt(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.attemptService.Abandon(c.Request.Context(), user, confirmed); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Attempt abandoned"})
}
