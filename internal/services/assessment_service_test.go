package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

func newAssessments(t *testing.T, seed ...*models.Assessment) (AssessmentService, testDeps) {
	t.Helper()
	deps := newTestDeps(t, seed...)
	return NewAssessmentService(deps.repo, deps.logger, deps.validator, deps.publisher), deps
}

func TestAssessmentService_Remove(t *testing.T) {
	s, deps := newAssessments(t, pendingAssessment("A", mcQuestion("q1", "a", 10)), pendingAssessment("B", mcQuestion("q1", "a", 10)))
	ctx := context.Background()

	if err := s.Remove(ctx, "missing", faculty); err != nil {
		t.Fatalf("Remove(missing) error = %v", err)
	}
	if n := mustCount(t, deps.repo); n != 2 {
		t.Errorf("Count() after removing unknown id = %d, want 2", n)
	}
	if len(deps.publisher.GetPublishedEvents()) != 0 {
		t.Error("no-op remove published an event")
	}

	if err := s.Remove(ctx, "A", faculty); err != nil {
		t.Fatalf("Remove(A) error = %v", err)
	}
	if n := mustCount(t, deps.repo); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
	published := deps.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.AssessmentRemoved {
		t.Errorf("published = %+v", published)
	}

	var permErr *PermissionError
	if err := s.Remove(ctx, "B", student); !errors.As(err, &permErr) {
		t.Errorf("Remove() by student error = %v, want PermissionError", err)
	}
}

func TestAssessmentService_RedactsPendingAnswersForStudents(t *testing.T) {
	done := completedAssessment("done", []string{"a"}, 100, mcQuestion("q1", "a", 10))
	s, _ := newAssessments(t, pendingAssessment("A", mcQuestion("q1", "a", 10)), done)
	ctx := context.Background()

	forStudent, err := s.GetByID(ctx, "A", student)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if forStudent.Questions[0].CorrectAnswer != nil {
		t.Error("student sees the correct answer of a pending assessment")
	}

	forFaculty, _ := s.GetByID(ctx, "A", faculty)
	if forFaculty.Questions[0].CorrectAnswer == nil {
		t.Error("faculty should see correct answers")
	}

	list, err := s.List(ctx, repositories.AssessmentFilters{}, student)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list[0].Questions[0].CorrectAnswer != nil || list[1].Questions[0].CorrectAnswer == nil {
		t.Error("completed assessments keep correct answers, pending ones hide them")
	}

	if _, err := s.GetByID(ctx, "missing", student); !errors.Is(err, ErrAssessmentNotFound) {
		t.Errorf("GetByID(missing) error = %v", err)
	}
}

func TestAssessmentService_SetFeedback(t *testing.T) {
	s, deps := newAssessments(t,
		pendingAssessment("A", mcQuestion("q1", "a", 10)),
		completedAssessment("done", []string{"b"}, 0, mcQuestion("q1", "a", 10)))
	ctx := context.Background()
	req := &validator.FeedbackRequest{Feedback: "Review chapter 3"}

	if _, err := s.SetFeedback(ctx, "A", req, faculty); !errors.Is(err, ErrAssessmentNotCompleted) {
		t.Errorf("SetFeedback(pending) error = %v", err)
	}
	if _, err := s.SetFeedback(ctx, "done", req, student); !errors.Is(err, ErrForbidden) {
		t.Errorf("SetFeedback() by student error = %v", err)
	}

	updated, err := s.SetFeedback(ctx, "done", req, faculty)
	if err != nil {
		t.Fatalf("SetFeedback() error = %v", err)
	}
	if updated.Feedback == nil || *updated.Feedback != "Review chapter 3" {
		t.Errorf("Feedback = %v", updated.Feedback)
	}
	stored := mustGet(t, deps.repo, "done")
	if stored.Feedback == nil || *stored.Score != 0 || stored.Status != models.StatusCompleted {
		t.Errorf("stored = %+v", stored)
	}
}

func TestAssessmentService_SeedDemoData(t *testing.T) {
	s, deps := newAssessments(t)
	ctx := context.Background()

	if err := s.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData() error = %v", err)
	}
	if n := mustCount(t, deps.repo); n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}
	for _, a := range DemoAssessments() {
		if a.TotalPoints != 100 || len(a.Questions) != 5 {
			t.Errorf("%s: total %d, %d questions", a.ID, a.TotalPoints, len(a.Questions))
		}
	}

	// seeding a non-empty store is a no-op
	if err := s.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData() error = %v", err)
	}
	if n := mustCount(t, deps.repo); n != 2 {
		t.Errorf("Count() after reseed = %d, want 2", n)
	}
}
