package repositories

import (
	"context"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

// AssessmentRepository is the session's canonical collection of assessments.
//
// Add, Remove and Update are total: a missing id is never an error, and Add
// performs no duplicate-id check. Only failures of the backing store surface
// as errors. Reads return copies in insertion order.
type AssessmentRepository interface {
	Add(ctx context.Context, assessment *models.Assessment) error
	Remove(ctx context.Context, id string) error
	Update(ctx context.Context, assessment *models.Assessment) error

	// Read model
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	List(ctx context.Context, filters AssessmentFilters) ([]*models.Assessment, error)
	Count(ctx context.Context) (int64, error)
}

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	Status    *models.AssessmentStatus `json:"status"`
	CourseID  *string                  `json:"course_id"`
	CreatedBy *string                  `json:"created_by"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

// Matches reports whether an assessment passes the non-paging filters.
func (f AssessmentFilters) Matches(a *models.Assessment) bool {
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.CourseID != nil && a.CourseID != *f.CourseID {
		return false
	}
	if f.CreatedBy != nil && a.CreatedBy != *f.CreatedBy {
		return false
	}
	return true
}

// Paginate applies Offset and Limit to an already filtered slice.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
