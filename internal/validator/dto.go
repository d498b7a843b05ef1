package validator

import (
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

// DraftDetailsRequest sets the assessment-level fields of a draft.
// Nil fields are left unchanged; emptiness is only checked on finalize.
type DraftDetailsRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string `json:"due_date" validate:"omitempty,due_date"`
	CourseID    *string `json:"course_id" validate:"omitempty,max=64"`
}

// QuestionDraftRequest adds one question to a draft
type QuestionDraftRequest struct {
	Prompt        string              `json:"prompt"`
	Type          models.QuestionType `json:"type" validate:"required,question_type"`
	Options       []string            `json:"options"`
	CorrectAnswer *string             `json:"correct_answer"`
	Points        int                 `json:"points" validate:"min=0,max=1000"`
}

// StartAttemptRequest opens an attempt on a pending assessment
type StartAttemptRequest struct {
	AssessmentID string `json:"assessment_id" binding:"required" validate:"required"`
}

// RecordAnswerRequest records or overwrites the answer to one question
type RecordAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

// FeedbackRequest sets instructor feedback on a completed assessment
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"max=5000"`
}
