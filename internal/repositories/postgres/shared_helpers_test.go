package postgres

import (
	"testing"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

func TestSharedHelpers_ListCacheKey(t *testing.T) {
	h := NewSharedHelpers(nil)
	status := models.StatusCompleted
	course := "2"

	tests := []struct {
		name    string
		filters repositories.AssessmentFilters
		want    string
	}{
		{
			name:    "empty",
			filters: repositories.AssessmentFilters{},
			want:    "status=*|course=*|creator=*|limit=0|offset=0",
		},
		{
			name:    "status and course",
			filters: repositories.AssessmentFilters{Status: &status, CourseID: &course, Limit: 10, Offset: 20},
			want:    "status=completed|course=2|creator=*|limit=10|offset=20",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.ListCacheKey(tt.filters); got != tt.want {
				t.Errorf("ListCacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrepareQuestions(t *testing.T) {
	a := &models.Assessment{
		ID: "a1",
		Questions: []models.Question{
			{ID: "q2", Position: 5},
			{ID: "q1", AssessmentID: "other"},
		},
	}

	prepareQuestions(a)

	for i, q := range a.Questions {
		if q.Position != i {
			t.Errorf("Questions[%d].Position = %d", i, q.Position)
		}
		if q.AssessmentID != "a1" {
			t.Errorf("Questions[%d].AssessmentID = %q", i, q.AssessmentID)
		}
	}
}
