package memory

import (
	"context"
	"sync"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// AssessmentMemory keeps assessments in process memory, in insertion order.
// Every mutation holds the write lock, so no two mutations interleave.
type AssessmentMemory struct {
	mu          sync.RWMutex
	assessments []*models.Assessment
}

func NewAssessmentMemory(seed ...*models.Assessment) repositories.AssessmentRepository {
	m := &AssessmentMemory{}
	for _, a := range seed {
		m.assessments = append(m.assessments, a.Clone())
	}
	return m
}

// Add appends a copy of the assessment. Ids are not checked for duplicates.
func (m *AssessmentMemory) Add(ctx context.Context, assessment *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assessments = append(m.assessments, assessment.Clone())
	return nil
}

// Remove deletes every assessment with the given id; absent ids are a no-op.
func (m *AssessmentMemory) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.assessments[:0]
	for _, a := range m.assessments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	// drop references beyond the new length
	for i := len(kept); i < len(m.assessments); i++ {
		m.assessments[i] = nil
	}
	m.assessments = kept
	return nil
}

// Update replaces matching assessments in place; absent ids are a no-op.
func (m *AssessmentMemory) Update(ctx context.Context, assessment *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.assessments {
		if a.ID == assessment.ID {
			m.assessments[i] = assessment.Clone()
		}
	}
	return nil
}

func (m *AssessmentMemory) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.assessments {
		if a.ID == id {
			return a.Clone(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *AssessmentMemory) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Assessment, 0, len(m.assessments))
	for _, a := range m.assessments {
		if filters.Matches(a) {
			result = append(result, a.Clone())
		}
	}
	return repositories.Paginate(result, filters.Limit, filters.Offset), nil
}

func (m *AssessmentMemory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.assessments)), nil
}
