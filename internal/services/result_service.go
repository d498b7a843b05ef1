package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// resultService renders completed assessments. It never writes to the store;
// window state lives here per viewer.
type resultService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*ResultWindow
}

func NewResultService(repo repositories.Repository, logger *slog.Logger) ResultService {
	return &resultService{
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		windows: make(map[string]*ResultWindow),
	}
}

// BuildResultView pairs Questions[i] with Answers[i] of a completed assessment
func BuildResultView(assessment *models.Assessment) (*ResultView, error) {
	if !assessment.IsCompleted() {
		return nil, ErrAssessmentNotCompleted
	}

	scored := ScoreAnswers(assessment.Questions, assessment.Answers)
	view := &ResultView{
		AssessmentID: assessment.ID,
		Title:        assessment.Title,
		TotalPoints:  assessment.TotalPoints,
		Feedback:     assessment.Feedback,
		CompletedAt:  assessment.CompletedAt,
		Items:        make([]ResultItem, len(assessment.Questions)),
	}
	if assessment.Score != nil {
		view.Score = *assessment.Score
	}

	for i, q := range assessment.Questions {
		item := scored.Items[i]
		view.Items[i] = ResultItem{
			Position:      i,
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			Type:          q.Type,
			Options:       q.Options,
			Answer:        item.Answer,
			CorrectAnswer: item.CorrectAnswer,
			IsCorrect:     item.IsCorrect,
			Graded:        item.Graded,
			Points:        q.Points,
		}
	}
	return view, nil
}

// Open builds the result view and makes it the viewer's open, restored window
func (s *resultService) Open(ctx context.Context, viewer *models.User, assessmentID string) (*ResultView, error) {
	if viewer == nil || viewer.ID == "" {
		return nil, ErrUnauthorized
	}

	assessment, err := getAssessment(ctx, s.repo, assessmentID)
	if err != nil {
		return nil, err
	}
	view, err := BuildResultView(assessment)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.windows[viewer.ID] = &ResultWindow{AssessmentID: assessment.ID, OpenedAt: s.now()}
	s.mu.Unlock()

	s.logger.Debug("Result opened", "viewer_id", viewer.ID, "assessment_id", assessment.ID)
	return view, nil
}

func (s *resultService) Current(ctx context.Context, viewer *models.User) (*ResultWindow, error) {
	return s.withWindow(viewer, func(w *ResultWindow) {})
}

func (s *resultService) Minimize(ctx context.Context, viewer *models.User) (*ResultWindow, error) {
	return s.withWindow(viewer, func(w *ResultWindow) { w.Minimized = true })
}

func (s *resultService) Restore(ctx context.Context, viewer *models.User) (*ResultWindow, error) {
	return s.withWindow(viewer, func(w *ResultWindow) { w.Minimized = false })
}

// Close dismisses the viewer's window; closing nothing is not an error
func (s *resultService) Close(ctx context.Context, viewer *models.User) error {
	if viewer == nil || viewer.ID == "" {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, viewer.ID)
	return nil
}

func (s *resultService) withWindow(viewer *models.User, fn func(w *ResultWindow)) (*ResultWindow, error) {
	if viewer == nil || viewer.ID == "" {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[viewer.ID]
	if !ok {
		return nil, ErrNoOpenResult
	}
	fn(w)
	c := *w
	return &c, nil
}
