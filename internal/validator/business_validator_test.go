package validator

import (
	"reflect"
	"testing"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBusinessValidator_ValidateQuestionDraft(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name      string
		req       QuestionDraftRequest
		wantRules []string
	}{
		{
			name: "valid multiple choice",
			req: QuestionDraftRequest{
				Prompt: "2+2?", Type: models.MultipleChoice,
				Options: []string{"3", "4", "5", "6"}, CorrectAnswer: strPtr("4"), Points: 10,
			},
		},
		{
			name: "empty correct answer allowed",
			req:  QuestionDraftRequest{Prompt: "p", Type: models.MultipleChoice, CorrectAnswer: strPtr(""), Points: 10},
		},
		{
			name: "coding without options",
			req:  QuestionDraftRequest{Prompt: "write fizzbuzz", Type: models.Coding, Points: 20},
		},
		{
			name:      "blank prompt",
			req:       QuestionDraftRequest{Prompt: "   ", Type: models.MultipleChoice, Points: 10},
			wantRules: []string{RuleEmptyPrompt},
		},
		{
			name: "five options",
			req: QuestionDraftRequest{
				Prompt: "p", Type: models.MultipleChoice,
				Options: []string{"a", "b", "c", "d", "e"}, Points: 10,
			},
			wantRules: []string{RuleTooManyOptions},
		},
		{
			name:      "unknown type",
			req:       QuestionDraftRequest{Prompt: "p", Type: "essay", Points: 10},
			wantRules: []string{"question_type"},
		},
		{
			name:      "negative points",
			req:       QuestionDraftRequest{Prompt: "p", Type: models.Coding, Points: -1},
			wantRules: []string{"min"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bv.ValidateQuestionDraft(&tt.req)
			if len(tt.wantRules) == 0 {
				if len(got) != 0 {
					t.Fatalf("ValidateQuestionDraft() = %v, want no errors", got)
				}
				return
			}
			if !reflect.DeepEqual(got.Rules(), tt.wantRules) {
				t.Errorf("rules = %v, want %v", got.Rules(), tt.wantRules)
			}
		})
	}
}

func TestBusinessValidator_ValidateDraftFinalize(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name                    string
		title, description, due string
		questions               int
		wantRules               []string
	}{
		{name: "complete", title: "Quiz", description: "d", due: "2024-04-15", questions: 1},
		{name: "no questions", title: "Quiz", description: "d", due: "2024-04-15", wantRules: []string{RuleNoQuestions}},
		{
			name:      "everything missing",
			wantRules: []string{RuleMissingTitle, RuleMissingDescription, RuleMissingDueDate, RuleNoQuestions},
		},
		{name: "whitespace title", title: "  ", description: "d", due: "2024-04-15", questions: 2, wantRules: []string{RuleMissingTitle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bv.ValidateDraftFinalize(tt.title, tt.description, tt.due, tt.questions)
			if len(tt.wantRules) == 0 && len(got) == 0 {
				return
			}
			if !reflect.DeepEqual(got.Rules(), tt.wantRules) {
				t.Errorf("rules = %v, want %v", got.Rules(), tt.wantRules)
			}
		})
	}
}

func TestValidator_DueDateTag(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		due     string
		wantErr bool
	}{
		{name: "calendar date", due: "2024-04-20"},
		{name: "past date accepted", due: "1999-01-01"},
		{name: "slashes", due: "04/20/2024", wantErr: true},
		{name: "impossible day", due: "2024-02-31", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&DraftDetailsRequest{DueDate: strPtr(tt.due)})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				errs, ok := err.(ValidationErrors)
				if !ok || !errs.HasRule("due_date") {
					t.Errorf("Validate() error = %#v, want due_date rule", err)
				}
			}
		})
	}
}
