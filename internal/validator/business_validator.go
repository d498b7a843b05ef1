package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

// Rule codes reported to callers so they can choose presentation
const (
	RuleMissingTitle       = "missing_title"
	RuleMissingDescription = "missing_description"
	RuleMissingDueDate     = "missing_due_date"
	RuleNoQuestions        = "no_questions"
	RuleEmptyPrompt        = "empty_prompt"
	RuleTooManyOptions     = "too_many_options"
)

// DueDateLayout is the calendar date format used for due dates
const DueDateLayout = "2006-01-02"

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates struct tags for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuestionDraft validates a question before it joins a draft.
// An empty correct answer is allowed; it simply never matches.
func (bv *BusinessValidator) ValidateQuestionDraft(req *QuestionDraftRequest) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(req.Prompt) == "" {
		errors = append(errors, ValidationError{
			Field:   "prompt",
			Message: "question text is required",
			Rule:    RuleEmptyPrompt,
		})
	}

	errors = append(errors, bv.Validate(req)...)

	if req.Type == models.MultipleChoice && len(req.Options) > models.MaxOptions {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: "multiple-choice questions take at most 4 options",
			Value:   len(req.Options),
			Rule:    RuleTooManyOptions,
		})
	}

	return errors
}

// ValidateDraftFinalize checks a draft is complete enough to commit
func (bv *BusinessValidator) ValidateDraftFinalize(title, description, dueDate string, questionCount int) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "is required", Rule: RuleMissingTitle})
	}
	if strings.TrimSpace(description) == "" {
		errors = append(errors, ValidationError{Field: "description", Message: "is required", Rule: RuleMissingDescription})
	}
	if strings.TrimSpace(dueDate) == "" {
		errors = append(errors, ValidationError{Field: "due_date", Message: "is required", Rule: RuleMissingDueDate})
	}
	if questionCount == 0 {
		errors = append(errors, ValidationError{
			Field:   "questions",
			Message: "at least one question is required",
			Value:   questionCount,
			Rule:    RuleNoQuestions,
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		switch models.QuestionType(fl.Field().String()) {
		case models.MultipleChoice, models.Coding:
			return true
		}
		return false
	})

	// Due dates are calendar days; past dates are accepted
	bv.validate.RegisterValidation("due_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DueDateLayout, fl.Field().String())
		return err == nil
	})
}
