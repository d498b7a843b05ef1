package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// SharedHelpers contains common query building
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyAssessmentFilters applies common filters to assessment queries
func (h *SharedHelpers) ApplyAssessmentFilters(query *gorm.DB, filters repositories.AssessmentFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	return query
}

// ApplyInsertionOrder sorts by creation time and paginates
func (h *SharedHelpers) ApplyInsertionOrder(query *gorm.DB, limit, offset int) *gorm.DB {
	query = query.Order("created_at ASC").Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// ListCacheKey builds a stable cache key for a filter set
func (h *SharedHelpers) ListCacheKey(filters repositories.AssessmentFilters) string {
	status, course, creator := "*", "*", "*"
	if filters.Status != nil {
		status = string(*filters.Status)
	}
	if filters.CourseID != nil {
		course = *filters.CourseID
	}
	if filters.CreatedBy != nil {
		creator = *filters.CreatedBy
	}
	return fmt.Sprintf("status=%s|course=%s|creator=%s|limit=%d|offset=%d",
		status, course, creator, filters.Limit, filters.Offset)
}
