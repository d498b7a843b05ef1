package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

// ===== RESPONSE DTOs =====

type DashboardStatsResponse struct {
	Overview DashboardOverview `json:"overview"`
	Metrics  DashboardMetrics  `json:"metrics"`
}

type DashboardOverview struct {
	TotalAssessments     int64 `json:"total_assessments"`
	PendingAssessments   int64 `json:"pending_assessments"`
	CompletedAssessments int64 `json:"completed_assessments"`
	TotalQuestions       int64 `json:"total_questions"`
}

type DashboardMetrics struct {
	CompletionRate float64 `json:"completion_rate"`
	AverageScore   float64 `json:"average_score"`
	HighestScore   *int    `json:"highest_score,omitempty"`
	LowestScore    *int    `json:"lowest_score,omitempty"`
}

type QuestionDistributionResponse struct {
	Type       string  `json:"type"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ===== SERVICE INTERFACE =====

type DashboardService interface {
	GetDashboardStats(ctx context.Context, courseID *string) (*DashboardStatsResponse, error)
	GetQuestionDistribution(ctx context.Context, courseID *string) ([]QuestionDistributionResponse, error)
}

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, courseID *string) (*DashboardStatsResponse, error) {
	assessments, err := s.repo.Assessment().List(ctx, repositories.AssessmentFilters{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	stats := &DashboardStatsResponse{}
	var scoreSum int
	for _, a := range assessments {
		stats.Overview.TotalAssessments++
		stats.Overview.TotalQuestions += int64(len(a.Questions))
		if !a.IsCompleted() {
			stats.Overview.PendingAssessments++
			continue
		}
		stats.Overview.CompletedAssessments++
		if a.Score == nil {
			continue
		}
		score := *a.Score
		scoreSum += score
		if stats.Metrics.HighestScore == nil || score > *stats.Metrics.HighestScore {
			stats.Metrics.HighestScore = &score
		}
		if stats.Metrics.LowestScore == nil || score < *stats.Metrics.LowestScore {
			stats.Metrics.LowestScore = &score
		}
	}

	if stats.Overview.TotalAssessments > 0 {
		stats.Metrics.CompletionRate = roundTo2(float64(stats.Overview.CompletedAssessments) * 100 / float64(stats.Overview.TotalAssessments))
	}
	if stats.Overview.CompletedAssessments > 0 {
		stats.Metrics.AverageScore = roundTo2(float64(scoreSum) / float64(stats.Overview.CompletedAssessments))
	}

	s.logger.Debug("Dashboard stats computed", "assessments", stats.Overview.TotalAssessments)
	return stats, nil
}

func (s *dashboardService) GetQuestionDistribution(ctx context.Context, courseID *string) ([]QuestionDistributionResponse, error) {
	assessments, err := s.repo.Assessment().List(ctx, repositories.AssessmentFilters{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	counts := map[models.QuestionType]int64{}
	var total int64
	for _, a := range assessments {
		for _, q := range a.Questions {
			counts[q.Type]++
			total++
		}
	}

	distribution := make([]QuestionDistributionResponse, 0, 2)
	for _, qt := range []models.QuestionType{models.MultipleChoice, models.Coding} {
		d := QuestionDistributionResponse{Type: string(qt), Count: counts[qt]}
		if total > 0 {
			d.Percentage = roundTo2(float64(d.Count) * 100 / float64(total))
		}
		distribution = append(distribution, d)
	}
	return distribution, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
