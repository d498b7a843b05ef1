package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// OpenResult shows a completed assessment's score, feedback and per-question answers
// @Summary View result
// @Tags results
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} services.ResultView
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Assessment not completed yet"
// @Router /results/{id} [get]
func (h *ResultHandler) OpenResult(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	view, err := h.resultService.Open(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ResultHandler) GetCurrentResult(c *gin.Context) {
	h.windowAction(c, h.resultService.Current)
}

func (h *ResultHandler) MinimizeResult(c *gin.Context) {
	h.windowAction(c, h.resultService.Minimize)
}

func (h *ResultHandler) RestoreResult(c *gin.Context) {
	h.windowAction(c, h.resultService.Restore)
}

func (h *ResultHandler) CloseResult(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.resultService.Close(c.Request.Context(), user); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Result closed"})
}

func (h *ResultHandler) windowAction(c *gin.Context, action func(ctx context.Context, viewer *models.User) (*services.ResultWindow, error)) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	window, err := action(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, window)
}
