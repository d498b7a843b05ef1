package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// publishEvent is best effort: lifecycle events never fail the operation
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "event_type", event.Type, "subject", event.Subject, "error", err)
	}
}

// getAssessment maps the store's not-found error to ErrAssessmentNotFound
func getAssessment(ctx context.Context, repo repositories.Repository, id string) (*models.Assessment, error) {
	assessment, err := repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

// redactForTaker hides correct answers while an assessment can still be taken
func redactForTaker(assessment *models.Assessment, viewer *models.User) *models.Assessment {
	if viewer != nil && viewer.Role.CanAuthor() {
		return assessment
	}
	if assessment.IsCompleted() {
		return assessment
	}
	for i := range assessment.Questions {
		assessment.Questions[i].CorrectAnswer = nil
	}
	return assessment
}
