package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "assessment-service"
	EventVersion = "1.0"
)

// Event types
const (
	AssessmentCreated   = "assessment.created"
	AssessmentCompleted = "assessment.completed"
	AssessmentRemoved   = "assessment.removed"
)

// Event is the envelope published for every assessment lifecycle change
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Subject   string      `json:"subject"`
	Data      interface{} `json:"data,omitempty"`
}

func NewEvent(eventType, subject string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Subject:   subject,
		Data:      data,
	}
}

type AssessmentCreatedData struct {
	AssessmentID  string `json:"assessment_id"`
	Title         string `json:"title"`
	CourseID      string `json:"course_id"`
	TotalPoints   int    `json:"total_points"`
	QuestionCount int    `json:"question_count"`
	CreatedBy     string `json:"created_by"`
}

type AssessmentCompletedData struct {
	AssessmentID string `json:"assessment_id"`
	StudentID    string `json:"student_id"`
	Score        int    `json:"score"`
}

type AssessmentRemovedData struct {
	AssessmentID string `json:"assessment_id"`
	RemovedBy    string `json:"removed_by"`
}

// EventPublisher publishes lifecycle events. Publishing is best effort;
// callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
