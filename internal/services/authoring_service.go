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

type authoringService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	ids            IDGenerator
	eventPublisher events.EventPublisher
	now            func() time.Time

	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewAuthoringService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, ids IDGenerator, publisher events.EventPublisher) AuthoringService {
	return &authoringService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		ids:            ids,
		eventPublisher: publisher,
		now:            time.Now,
		drafts:         make(map[string]*Draft),
	}
}

// StartDraft replaces any existing draft with an empty one
func (s *authoringService) StartDraft(ctx context.Context, author *models.User) (*Draft, error) {
	if err := s.checkAuthor(author, "start_draft"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := &Draft{AuthorID: author.ID, Questions: []models.Question{}, UpdatedAt: s.now()}
	s.drafts[author.ID] = draft

	s.logger.Info("Draft started", "author_id", author.ID)
	return copyDraft(draft), nil
}

func (s *authoringService) GetDraft(ctx context.Context, author *models.User) (*Draft, error) {
	if err := s.checkAuthor(author, "read_draft"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[author.ID]
	if !ok {
		return nil, ErrNoDraft
	}
	return copyDraft(draft), nil
}

func (s *authoringService) UpdateDraftDetails(ctx context.Context, author *models.User, req *validator.DraftDetailsRequest) (*Draft, error) {
	if err := s.checkAuthor(author, "update_draft"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draftFor(author.ID)
	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.DueDate != nil {
		draft.DueDate = *req.DueDate
	}
	if req.CourseID != nil {
		draft.CourseID = *req.CourseID
	}
	draft.UpdatedAt = s.now()

	return copyDraft(draft), nil
}

// AddQuestion appends a question to the author's draft, creating the draft if needed
func (s *authoringService) AddQuestion(ctx context.Context, author *models.User, req *validator.QuestionDraftRequest) (*Draft, error) {
	if err := s.checkAuthor(author, "add_question"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateQuestionDraft(req); len(errs) > 0 {
		return nil, errs
	}

	question := models.Question{
		ID:            s.ids.NewID(),
		Prompt:        req.Prompt,
		Type:          req.Type,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
	}
	if req.Type == models.MultipleChoice && len(req.Options) > 0 {
		question.Options = append(question.Options, req.Options...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draftFor(author.ID)
	question.Position = len(draft.Questions)
	draft.Questions = append(draft.Questions, question)
	draft.TotalPoints += question.Points
	draft.UpdatedAt = s.now()

	s.logger.Debug("Question added to draft", "author_id", author.ID, "question_id", question.ID, "type", question.Type)
	return copyDraft(draft), nil
}

func (s *authoringService) DiscardDraft(ctx context.Context, author *models.User) error {
	if err := s.checkAuthor(author, "discard_draft"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, author.ID)
	return nil
}

// Finalize commits the draft as a pending assessment. On any failure the
// draft is kept as it was and nothing reaches the store.
func (s *authoringService) Finalize(ctx context.Context, author *models.User) (*models.Assessment, error) {
	if err := s.checkAuthor(author, "finalize_draft"); err != nil {
		return nil, err
	}

	// A valid draft is taken out of the map before the store add, so a
	// concurrent Finalize for the same author finds nothing to commit.
	s.mu.Lock()
	draft, ok := s.drafts[author.ID]
	if !ok {
		draft = &Draft{AuthorID: author.ID}
	}
	errs := s.validator.GetBusinessValidator().ValidateDraftFinalize(draft.Title, draft.Description, draft.DueDate, len(draft.Questions))
	if len(errs) > 0 {
		s.mu.Unlock()
		s.logger.Info("Draft rejected", "author_id", author.ID, "reasons", errs.Rules())
		return nil, &DraftValidationError{Errors: errs}
	}
	delete(s.drafts, author.ID)
	s.mu.Unlock()
	snapshot := copyDraft(draft)

	now := s.now()
	assessment := &models.Assessment{
		ID:          s.ids.NewID(),
		Title:       snapshot.Title,
		Description: snapshot.Description,
		CourseID:    snapshot.CourseID,
		DueDate:     snapshot.DueDate,
		Questions:   snapshot.Questions,
		Status:      models.StatusPending,
		CreatedBy:   author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	assessment.TotalPoints = assessment.SumPoints()

	if err := s.repo.Assessment().Add(ctx, assessment); err != nil {
		s.mu.Lock()
		if _, replaced := s.drafts[author.ID]; !replaced {
			s.drafts[author.ID] = draft
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to add assessment: %w", err)
	}

	metrics.AssessmentsCreated.Inc()
	s.logger.Info("Assessment created", "assessment_id", assessment.ID, "author_id", author.ID,
		"questions", len(assessment.Questions), "total_points", assessment.TotalPoints)

	publishEvent(ctx, s.eventPublisher, s.logger, events.NewEvent(events.AssessmentCreated, assessment.ID, events.AssessmentCreatedData{
		AssessmentID:  assessment.ID,
		Title:         assessment.Title,
		CourseID:      assessment.CourseID,
		TotalPoints:   assessment.TotalPoints,
		QuestionCount: len(assessment.Questions),
		CreatedBy:     author.ID,
	}))

	return assessment.Clone(), nil
}

// draftFor returns the author's draft, creating it if needed. Caller holds s.mu.
func (s *authoringService) draftFor(authorID string) *Draft {
	draft, ok := s.drafts[authorID]
	if !ok {
		draft = &Draft{AuthorID: authorID, Questions: []models.Question{}}
		s.drafts[authorID] = draft
	}
	return draft
}

func (s *authoringService) checkAuthor(user *models.User, action string) error {
	if user == nil || user.ID == "" {
		return ErrUnauthorized
	}
	if !user.Role.CanAuthor() {
		return NewPermissionError(user.ID, "", "draft", action, "only faculty can author assessments")
	}
	return nil
}

func copyDraft(d *Draft) *Draft {
	c := *d
	c.Questions = models.CloneQuestions(d.Questions)
	if c.Questions == nil {
		c.Questions = []models.Question{}
	}
	return &c
}
