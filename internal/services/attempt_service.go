package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/metrics"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

// attemptSession pairs a student's attempt with the assessment snapshot taken at start
type attemptSession struct {
	attempt    *models.Attempt
	assessment *models.Assessment
}

type attemptService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	now            func() time.Time

	mu       sync.Mutex
	sessions map[string]*attemptSession

	// serializes the pending check and the store update on submit
	submitMu sync.Mutex
}

func NewAttemptService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AttemptService {
	return &attemptService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: publisher,
		now:            time.Now,
		sessions:       make(map[string]*attemptSession),
	}
}

// Start opens an attempt on a pending assessment, discarding any previous
// in-memory answers the student had.
func (s *attemptService) Start(ctx context.Context, student *models.User, assessmentID string) (*AttemptView, error) {
	if student == nil || student.ID == "" {
		return nil, ErrUnauthorized
	}

	assessment, err := getAssessment(ctx, s.repo, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.IsCompleted() {
		return nil, ErrAssessmentCompleted
	}

	session := &attemptSession{
		attempt:    models.NewAttempt(assessment.ID, student.ID, s.now()),
		assessment: assessment,
	}

	s.mu.Lock()
	s.sessions[student.ID] = session
	view := session.view()
	s.mu.Unlock()

	s.logger.Info("Attempt started", "student_id", student.ID, "assessment_id", assessment.ID)
	return view, nil
}

// RecordAnswer records or overwrites one answer; order of answering is free
func (s *attemptService) RecordAnswer(ctx context.Context, student *models.User, req *validator.RecordAnswerRequest) (*AttemptView, error) {
	if student == nil || student.ID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[student.ID]
	if !ok || !session.attempt.IsActive() {
		return nil, ErrNoActiveAttempt
	}
	if session.assessment.QuestionByID(req.QuestionID) == nil {
		return nil, ErrQuestionNotInAssessment
	}

	session.attempt.Answers[req.QuestionID] = req.Answer
	return session.view(), nil
}

// Submit scores a fully answered attempt and completes the assessment.
// While any question is unanswered the attempt and the store are left as they were.
func (s *attemptService) Submit(ctx context.Context, student *models.User) (*SubmissionResult, error) {
	if student == nil || student.ID == "" {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	session, ok := s.sessions[student.ID]
	if !ok || !session.attempt.IsActive() {
		s.mu.Unlock()
		return nil, ErrNoActiveAttempt
	}
	attempt := session.attempt.Snapshot()
	s.mu.Unlock()

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	current, err := getAssessment(ctx, s.repo, attempt.AssessmentID)
	if err != nil {
		return nil, err
	}
	if current.IsCompleted() {
		return nil, ErrAssessmentCompleted
	}

	if missing := attempt.Unanswered(current.Questions); len(missing) > 0 {
		metrics.Submissions.WithLabelValues("incomplete").Inc()
		s.logger.Info("Submission rejected", "student_id", student.ID, "assessment_id", current.ID, "remaining", len(missing))
		return nil, &IncompleteAnswersError{Missing: missing}
	}

	answers := attempt.PositionalAnswers(current.Questions)
	result := ScoreAnswers(current.Questions, answers)

	completedAt := s.now()
	score := result.Score
	completed := current.Clone()
	completed.Status = models.StatusCompleted
	completed.Score = &score
	completed.Answers = answers
	completed.CompletedAt = &completedAt
	completed.UpdatedAt = completedAt

	if err := s.repo.Assessment().Update(ctx, completed); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.mu.Lock()
	if s.sessions[student.ID] == session {
		session.attempt.State = models.AttemptSubmitted
		session.attempt.EndedAt = &completedAt
		delete(s.sessions, student.ID)
	}
	s.mu.Unlock()

	metrics.Submissions.WithLabelValues("accepted").Inc()
	metrics.Scores.Observe(float64(score))
	s.logger.Info("Assessment submitted", "student_id", student.ID, "assessment_id", completed.ID,
		"score", score, "earned", result.EarnedPoints, "total", result.TotalPoints)

	publishEvent(ctx, s.eventPublisher, s.logger, events.NewEvent(events.AssessmentCompleted, completed.ID, events.AssessmentCompletedData{
		AssessmentID: completed.ID,
		StudentID:    student.ID,
		Score:        score,
	}))

	return &SubmissionResult{Assessment: completed, Result: result}, nil
}

// Abandon exits the attempt. Without confirmation nothing changes.
func (s *attemptService) Abandon(ctx context.Context, student *models.User, confirmed bool) error {
	if student == nil || student.ID == "" {
		return ErrUnauthorized
	}
	if !confirmed {
		return ErrExitNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[student.ID]
	if !ok {
		return nil
	}
	session.attempt.State = models.AttemptAbandoned
	delete(s.sessions, student.ID)

	s.logger.Info("Attempt abandoned", "student_id", student.ID, "assessment_id", session.attempt.AssessmentID,
		"answers_discarded", len(session.attempt.Answers))
	return nil
}

func (s *attemptService) Current(ctx context.Context, student *models.User) (*AttemptView, error) {
	if student == nil || student.ID == "" {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[student.ID]
	if !ok {
		return nil, ErrNoActiveAttempt
	}
	return session.view(), nil
}

// view copies the session for callers. Caller holds the service lock.
func (sess *attemptSession) view() *AttemptView {
	assessment := sess.assessment.Clone()
	for i := range assessment.Questions {
		assessment.Questions[i].CorrectAnswer = nil
	}
	unanswered := sess.attempt.Unanswered(assessment.Questions)
	if unanswered == nil {
		unanswered = []string{}
	}
	return &AttemptView{
		Attempt:    sess.attempt.Snapshot(),
		Assessment: assessment,
		Unanswered: unanswered,
	}
}
