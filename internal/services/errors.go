package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

var (
	ErrAssessmentNotFound      = errors.New("assessment not found")
	ErrAssessmentCompleted     = errors.New("assessment already completed")
	ErrAssessmentNotCompleted  = errors.New("assessment not completed")
	ErrQuestionNotInAssessment = errors.New("question does not belong to assessment")
	ErrNoActiveAttempt         = errors.New("no active attempt")
	ErrExitNotConfirmed        = errors.New("exit requires confirmation, progress will be lost")
	ErrNoDraft                 = errors.New("no draft in progress")
	ErrNoOpenResult            = errors.New("no result open")

	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

type ValidationErrors = validator.ValidationErrors

// PermissionError reports a role that may not perform an action
type PermissionError struct {
	UserID     string
	ResourceID string
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrForbidden
}

// DraftValidationError lists every reason a draft cannot be finalized.
// The draft itself is left untouched.
type DraftValidationError struct {
	Errors ValidationErrors
}

func (e *DraftValidationError) Error() string {
	return "draft cannot be finalized: " + strings.Join(e.Reasons(), ", ")
}

// Reasons returns the rule codes, e.g. missing_title or no_questions
func (e *DraftValidationError) Reasons() []string {
	return e.Errors.Rules()
}

func (e *DraftValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// IncompleteAnswersError is returned by Submit while questions remain unanswered
type IncompleteAnswersError struct {
	Missing []string
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("please answer all questions before submitting, %d questions remaining", len(e.Missing))
}

func (e *IncompleteAnswersError) Is(target error) bool {
	return target == ErrValidationFailed
}
