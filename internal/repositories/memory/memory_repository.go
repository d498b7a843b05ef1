package memory

import (
	"context"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// MemoryRepository implements repositories.Repository without any backing service.
// Nothing survives a restart.
type MemoryRepository struct {
	assessment repositories.AssessmentRepository
}

func NewMemoryRepository(seed ...*models.Assessment) repositories.Repository {
	return &MemoryRepository{assessment: NewAssessmentMemory(seed...)}
}

func (r *MemoryRepository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
