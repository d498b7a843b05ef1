package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/lms-assessment-service/internal/cache"
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

type AssessmentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewAssessmentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Add inserts the assessment with its questions. Ids are not checked up
// front; a reused id fails on the primary key.
func (a *AssessmentPostgreSQL) Add(ctx context.Context, assessment *models.Assessment) error {
	record := assessment.Clone()
	prepareQuestions(record)

	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, a.cacheManager.List, "*")
	return nil
}

// Remove deletes the assessment and its questions; a missing id is a no-op
func (a *AssessmentPostgreSQL) Remove(ctx context.Context, id string) error {
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Assessment{}).Error; err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateAssessmentCache(ctx, a.cacheManager, id)
	return nil
}

// Update replaces the stored record with matching id; a missing id is a no-op
func (a *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	record := assessment.Clone()
	prepareQuestions(record)

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Assessment{}).Where("id = ?", record.ID).Updates(map[string]interface{}{
			"title":        record.Title,
			"description":  record.Description,
			"course_id":    record.CourseID,
			"due_date":     record.DueDate,
			"total_points": record.TotalPoints,
			"status":       record.Status,
			"score":        record.Score,
			"answers":      record.Answers,
			"completed_at": record.CompletedAt,
			"feedback":     record.Feedback,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update assessment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Where("assessment_id = ?", record.ID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to replace questions: %w", err)
		}
		if len(record.Questions) > 0 {
			if err := tx.Create(&record.Questions).Error; err != nil {
				return fmt.Errorf("failed to replace questions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateAssessmentCache(ctx, a.cacheManager, record.ID)
	return nil
}

// GetByID retrieves an assessment with its ordered questions, cached
func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment

	err := a.cacheManager.Assessment.CacheOrExecute(ctx, "id:"+id, &assessment, cache.AssessmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessment models.Assessment
		err := a.withQuestions(a.db.WithContext(ctx)).
			Where("id = ?", id).
			First(&dbAssessment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get assessment: %w", err)
		}
		return &dbAssessment, nil
	})
	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

// List returns assessments in insertion order, cached per filter set
func (a *AssessmentPostgreSQL) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, error) {
	var assessments []*models.Assessment

	err := a.cacheManager.List.CacheOrExecute(ctx, a.helpers.ListCacheKey(filters), &assessments, cache.ListCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessments []*models.Assessment
		query := a.helpers.ApplyAssessmentFilters(a.withQuestions(a.db.WithContext(ctx)), filters)
		query = a.helpers.ApplyInsertionOrder(query, filters.Limit, filters.Offset)
		if err := query.Find(&dbAssessments).Error; err != nil {
			return nil, fmt.Errorf("failed to list assessments: %w", err)
		}
		return dbAssessments, nil
	})
	if err != nil {
		return nil, err
	}

	return assessments, nil
}

func (a *AssessmentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Assessment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}

func (a *AssessmentPostgreSQL) withQuestions(query *gorm.DB) *gorm.DB {
	return query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// prepareQuestions stamps owner and position so order survives the round trip
func prepareQuestions(assessment *models.Assessment) {
	for i := range assessment.Questions {
		assessment.Questions[i].AssessmentID = assessment.ID
		assessment.Questions[i].Position = i
	}
}
