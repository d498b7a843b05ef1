package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

// DraftHandler serves the authoring flow for the calling author's draft
type DraftHandler struct {
	BaseHandler
	authoringService services.AuthoringService
}

func NewDraftHandler(authoringService services.AuthoringService, logger utils.Logger) *DraftHandler {
	return &DraftHandler{
		BaseHandler:      NewBaseHandler(logger),
		authoringService: authoringService,
	}
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	draft, err := h.authoringService.GetDraft(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// StartDraft discards any current draft and begins an empty one
func (h *DraftHandler) StartDraft(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	draft, err := h.authoringService.StartDraft(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// UpdateDraftDetails sets title, description, due date or course; absent fields are kept
// @Summary Update draft details
// @Tags drafts
// @Accept json
// @Produce json
// @Param details body validator.DraftDetailsRequest true "Draft details"
// @Success 200 {object} services.Draft
// @Failure 400 {object} ErrorResponse
// @Router /drafts [put]
func (h *DraftHandler) UpdateDraftDetails(c *gin.Context) {
	var req validator.DraftDetailsRequest
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

	draft, err := h.authoringService.UpdateDraftDetails(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// AddQuestion appends a question to the draft
// @Summary Add question to draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param question body validator.QuestionDraftRequest true "Question"
// @Success 201 {object} services.Draft
// @Failure 400 {object} ErrorResponse "empty_prompt, too_many_options"
// @Router /drafts/questions [post]
func (h *DraftHandler) AddQuestion(c *gin.Context) {
	var req validator.QuestionDraftRequest
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

	draft, err := h.authoringService.AddQuestion(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.authoringService.DiscardDraft(c.Request.Context(), user); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Draft discarded"})
}

// Finalize commits the draft as a new pending assessment
// @Summary Finalize draft
// @Tags drafts
// @Produce json
// @Success 201 {object} models.Assessment
// @Failure 400 {object} ErrorResponse "missing_title, missing_description, missing_due_date, no_questions"
// @Router /drafts/finalize [post]
func (h *DraftHandler) Finalize(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Finalizing draft")

	assessment, err := h.authoringService.Finalize(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assessment)
}
