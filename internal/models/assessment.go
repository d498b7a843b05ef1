package models

import (
	"time"

	"gorm.io/datatypes"
)

type AssessmentStatus string

const (
	StatusPending   AssessmentStatus = "pending"
	StatusCompleted AssessmentStatus = "completed"
)

type Assessment struct {
	ID          string           `json:"id" gorm:"primaryKey;size:64"`
	Title       string           `json:"title" gorm:"not null;size:200;index"`
	Description string           `json:"description" gorm:"type:text;not null"`
	CourseID    string           `json:"course_id" gorm:"size:64;index"`
	DueDate     string           `json:"due_date" gorm:"size:10;not null"` // YYYY-MM-DD
	TotalPoints int              `json:"total_points" gorm:"not null;default:0"`
	Status      AssessmentStatus `json:"status" gorm:"default:pending;index"`

	// Set once, on submission
	Score       *int                        `json:"score,omitempty"`
	Answers     datatypes.JSONSlice[string] `json:"answers,omitempty" gorm:"type:jsonb"`
	CompletedAt *time.Time                  `json:"completed_at,omitempty"`

	Feedback *string `json:"feedback,omitempty" gorm:"type:text"`

	// Metadata
	CreatedBy string    `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// IsCompleted reports whether a submission has been accepted.
func (a *Assessment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// SumPoints adds up the point values of all questions.
func (a *Assessment) SumPoints() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Points
	}
	return total
}

// QuestionByID returns the question with the given id, or nil.
func (a *Assessment) QuestionByID(id string) *Question {
	for i := range a.Questions {
		if a.Questions[i].ID == id {
			return &a.Questions[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can't mutate stored state.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	c := *a
	if a.Score != nil {
		score := *a.Score
		c.Score = &score
	}
	if a.Feedback != nil {
		feedback := *a.Feedback
		c.Feedback = &feedback
	}
	if a.CompletedAt != nil {
		completedAt := *a.CompletedAt
		c.CompletedAt = &completedAt
	}
	if a.Answers != nil {
		c.Answers = append(datatypes.JSONSlice[string]{}, a.Answers...)
	}
	c.Questions = CloneQuestions(a.Questions)
	return &c
}
