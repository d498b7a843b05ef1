package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries what every handler shares
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.FromContext(c.Request.Context(), h.logger)
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.requestLogger(c).Info(msg, append(args, "user_id", c.GetString(ContextUserID))...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	h.requestLogger(c).Error(msg, append(args, "error", err)...)
}

// currentUser returns the identity set by IdentityMiddleware, or writes 401
func (h *BaseHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return user, true
}

func (h *BaseHandler) parseStringIDParam(c *gin.Context, param string) string {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return id
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var draftErr *services.DraftValidationError
	if errors.As(err, &draftErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Please fill in all required fields and add at least one question",
			Details: map[string]interface{}{
				"reasons": draftErr.Reasons(),
				"errors":  draftErr.Errors,
			},
		})
		return
	}

	var incomplete *services.IncompleteAnswersError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: incomplete.Error(),
			Details: map[string]interface{}{
				"remaining": len(incomplete.Missing),
				"missing":   incomplete.Missing,
			},
		})
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAssessmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Assessment not found"})
	case errors.Is(err, services.ErrNoDraft):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No draft in progress"})
	case errors.Is(err, services.ErrNoActiveAttempt):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No active attempt"})
	case errors.Is(err, services.ErrNoOpenResult):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No result open"})
	case errors.Is(err, services.ErrQuestionNotInAssessment):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Question does not belong to this assessment"})
	case errors.Is(err, services.ErrExitNotConfirmed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Are you sure you want to exit? Your progress will be lost.",
			Details: "repeat the request with confirm=true",
		})
	case errors.Is(err, services.ErrAssessmentCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Assessment already completed"})
	case errors.Is(err, services.ErrAssessmentNotCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Assessment not completed yet"})
	// Generic errors
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized access"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Forbidden - insufficient permissions"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
