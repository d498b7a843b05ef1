package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

type assessmentService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	now            func() time.Time
}

func NewAssessmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AssessmentService {
	return &assessmentService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: publisher,
		now:            time.Now,
	}
}

func (s *assessmentService) List(ctx context.Context, filters repositories.AssessmentFilters, viewer *models.User) ([]*models.Assessment, error) {
	assessments, err := s.repo.Assessment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	for _, a := range assessments {
		redactForTaker(a, viewer)
	}
	return assessments, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id string, viewer *models.User) (*models.Assessment, error) {
	assessment, err := getAssessment(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return redactForTaker(assessment, viewer), nil
}

// Remove deletes an assessment. Removing an unknown id succeeds and changes nothing.
func (s *assessmentService) Remove(ctx context.Context, id string, user *models.User) error {
	if err := s.checkManager(user, id, "delete"); err != nil {
		return err
	}

	_, err := s.repo.Assessment().GetByID(ctx, id)
	existed := err == nil
	if err != nil && !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.repo.Assessment().Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove assessment: %w", err)
	}
	if !existed {
		s.logger.Debug("Remove of unknown assessment ignored", "assessment_id", id)
		return nil
	}

	s.logger.Info("Assessment removed", "assessment_id", id, "user_id", user.ID)
	publishEvent(ctx, s.eventPublisher, s.logger, events.NewEvent(events.AssessmentRemoved, id, events.AssessmentRemovedData{
		AssessmentID: id,
		RemovedBy:    user.ID,
	}))
	return nil
}

// SetFeedback attaches instructor feedback shown alongside the result
func (s *assessmentService) SetFeedback(ctx context.Context, id string, req *validator.FeedbackRequest, user *models.User) (*models.Assessment, error) {
	if err := s.checkManager(user, id, "set_feedback"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	assessment, err := getAssessment(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !assessment.IsCompleted() {
		return nil, ErrAssessmentNotCompleted
	}

	feedback := req.Feedback
	assessment.Feedback = &feedback
	assessment.UpdatedAt = s.now()
	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.logger.Info("Feedback set", "assessment_id", id, "user_id", user.ID)
	return assessment, nil
}

// SeedDemoData loads the demo assessments into an empty store
func (s *assessmentService) SeedDemoData(ctx context.Context) error {
	count, err := s.repo.Assessment().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count assessments: %w", err)
	}
	if count > 0 {
		s.logger.Info("Store not empty, skipping demo data", "count", count)
		return nil
	}

	now := s.now()
	for _, a := range DemoAssessments() {
		a.CreatedAt, a.UpdatedAt = now, now
		if err := s.repo.Assessment().Add(ctx, a); err != nil {
			return fmt.Errorf("failed to seed assessment %s: %w", a.ID, err)
		}
	}
	s.logger.Info("Demo assessments seeded")
	return nil
}

func (s *assessmentService) checkManager(user *models.User, id, action string) error {
	if user == nil || user.ID == "" {
		return ErrUnauthorized
	}
	if !user.Role.CanAuthor() {
		return NewPermissionError(user.ID, id, "assessment", action, "only faculty can manage assessments")
	}
	return nil
}
