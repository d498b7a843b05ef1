package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories/memory"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

var (
	faculty = &models.User{ID: "f-1", Name: "Dr. Ada", Role: models.RoleFaculty}
	student = &models.User{ID: "s-1", Name: "Sam", Role: models.RoleStudent}
	other   = &models.User{ID: "s-2", Name: "Kim", Role: models.RoleStudent}
)

type testDeps struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher *events.MockEventPublisher
}

func newTestDeps(t *testing.T, seed ...*models.Assessment) testDeps {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return testDeps{
		repo:      memory.NewMemoryRepository(seed...),
		logger:    logger,
		validator: validator.New(),
		publisher: events.NewMockEventPublisher(logger),
	}
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func mcQuestion(id, correct string, points int) models.Question {
	return models.Question{
		ID:            id,
		Prompt:        "question " + id,
		Type:          models.MultipleChoice,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: strPtr(correct),
		Points:        points,
	}
}

// pendingAssessment builds a stored-shape assessment with the given questions
func pendingAssessment(id string, questions ...models.Question) *models.Assessment {
	a := &models.Assessment{
		ID:          id,
		Title:       "Quiz " + id,
		Description: "desc",
		CourseID:    "1",
		DueDate:     "2024-04-15",
		Status:      models.StatusPending,
		CreatedBy:   faculty.ID,
		Questions:   questions,
	}
	a.TotalPoints = a.SumPoints()
	return a
}

func mustGet(t *testing.T, repo repositories.Repository, id string) *models.Assessment {
	t.Helper()
	a, err := repo.Assessment().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID(%s) error = %v", id, err)
	}
	return a
}

func mustCount(t *testing.T, repo repositories.Repository) int64 {
	t.Helper()
	n, err := repo.Assessment().Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	return n
}
