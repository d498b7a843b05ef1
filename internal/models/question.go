package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	Coding         QuestionType = "coding"
)

// MaxOptions is the number of option slots offered for a multiple-choice question.
const MaxOptions = 4

type Question struct {
	// ID is only unique within its assessment
	AssessmentID string `json:"-" gorm:"primaryKey;size:64"`

	ID            string                      `json:"id" gorm:"primaryKey;column:question_id;size:64"`
	Prompt        string                      `json:"prompt" gorm:"type:text;not null"`
	Type          QuestionType                `json:"type" gorm:"size:32;not null"`
	Options       datatypes.JSONSlice[string] `json:"options,omitempty" gorm:"type:jsonb"`
	CorrectAnswer *string                     `json:"correct_answer,omitempty" gorm:"type:text"`
	Points        int                         `json:"points" gorm:"not null;default:0"`
	Position      int                         `json:"-" gorm:"not null"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Question) TableName() string {
	return "assessment_questions"
}

// HasCorrectAnswer reports whether the question can be auto-graded.
// An empty correct answer never matches anything, so it counts as undefined.
func (q *Question) HasCorrectAnswer() bool {
	return q.CorrectAnswer != nil && *q.CorrectAnswer != ""
}

func (q Question) clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append(datatypes.JSONSlice[string]{}, q.Options...)
	}
	if q.CorrectAnswer != nil {
		answer := *q.CorrectAnswer
		c.CorrectAnswer = &answer
	}
	return c
}

// CloneQuestions deep-copies a question slice, keeping nil as nil.
func CloneQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.clone()
	}
	return out
}
