package models

import "time"

type AttemptState string

const (
	AttemptNotStarted AttemptState = "not_started"
	AttemptInProgress AttemptState = "in_progress"
	AttemptSubmitted  AttemptState = "submitted"
	AttemptAbandoned  AttemptState = "abandoned"
)

// Attempt is one student's in-memory answer set for an assessment.
// Answers are keyed by question id; positional order is only produced
// when the attempt is committed to the assessment record.
type Attempt struct {
	AssessmentID string            `json:"assessment_id"`
	StudentID    string            `json:"student_id"`
	State        AttemptState      `json:"state"`
	Answers      map[string]string `json:"answers"`
	StartedAt    time.Time         `json:"started_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
}

// NewAttempt returns an in-progress attempt with no answers recorded.
func NewAttempt(assessmentID, studentID string, now time.Time) *Attempt {
	return &Attempt{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		State:        AttemptInProgress,
		Answers:      make(map[string]string),
		StartedAt:    now,
	}
}

// IsActive reports whether answers can still be recorded.
func (a *Attempt) IsActive() bool {
	return a != nil && a.State == AttemptInProgress
}

// Unanswered returns the ids of questions without a non-empty answer,
// in question order.
func (a *Attempt) Unanswered(questions []Question) []string {
	var missing []string
	for _, q := range questions {
		if a.Answers[q.ID] == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// PositionalAnswers converts the id-keyed answers to a slice aligned with questions.
func (a *Attempt) PositionalAnswers(questions []Question) []string {
	answers := make([]string, len(questions))
	for i, q := range questions {
		answers[i] = a.Answers[q.ID]
	}
	return answers
}

// Snapshot returns a copy safe to hand out of the service.
func (a *Attempt) Snapshot() *Attempt {
	if a == nil {
		return nil
	}
	c := *a
	c.Answers = make(map[string]string, len(a.Answers))
	for k, v := range a.Answers {
		c.Answers[k] = v
	}
	if a.EndedAt != nil {
		endedAt := *a.EndedAt
		c.EndedAt = &endedAt
	}
	return &c
}
