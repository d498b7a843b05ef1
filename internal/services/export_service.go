package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
)

const (
	summarySheet = "Summary"
	answersSheet = "Answers"
)

var (
	summaryHeader = []interface{}{"Assessment ID", "Title", "Course", "Due Date", "Score", "Total Points", "Completed At", "Feedback"}
	answersHeader = []interface{}{"Assessment ID", "Position", "Question ID", "Question", "Answer", "Correct Answer", "Result", "Points"}
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportResults writes an xlsx workbook of completed assessments to w.
// With no ids every completed assessment is exported.
func (s *exportService) ExportResults(ctx context.Context, w io.Writer, user *models.User, assessmentIDs ...string) error {
	if user == nil || user.ID == "" {
		return ErrUnauthorized
	}
	if !user.Role.CanAuthor() {
		return NewPermissionError(user.ID, "", "assessment", "export", "only faculty can export results")
	}

	assessments, err := s.collect(ctx, assessmentIDs)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeWorkbook(f, assessments); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Results exported", "user_id", user.ID, "assessments", len(assessments))
	return nil
}

func (s *exportService) collect(ctx context.Context, ids []string) ([]*models.Assessment, error) {
	if len(ids) == 0 {
		status := models.StatusCompleted
		assessments, err := s.repo.Assessment().List(ctx, repositories.AssessmentFilters{Status: &status})
		if err != nil {
			return nil, fmt.Errorf("failed to list assessments: %w", err)
		}
		return assessments, nil
	}

	assessments := make([]*models.Assessment, 0, len(ids))
	for _, id := range ids {
		a, err := getAssessment(ctx, s.repo, id)
		if err != nil {
			return nil, err
		}
		if !a.IsCompleted() {
			return nil, ErrAssessmentNotCompleted
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

func writeWorkbook(f *excelize.File, assessments []*models.Assessment) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for sheet, header := range map[string][]interface{}{summarySheet: summaryHeader, answersSheet: answersHeader} {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	answerRow := 2
	for i, a := range assessments {
		view, err := BuildResultView(a)
		if err != nil {
			return err
		}

		summary := []interface{}{a.ID, a.Title, a.CourseID, a.DueDate, view.Score, a.TotalPoints, formatTime(a.CompletedAt), derefString(a.Feedback)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(summarySheet, cell, &summary); err != nil {
			return err
		}

		for _, item := range view.Items {
			row := []interface{}{a.ID, item.Position + 1, item.QuestionID, item.Prompt, item.Answer, derefString(item.CorrectAnswer), resultLabel(item), item.Points}
			cell, _ := excelize.CoordinatesToCellName(1, answerRow)
			if err := f.SetSheetRow(answersSheet, cell, &row); err != nil {
				return err
			}
			answerRow++
		}
	}

	f.SetActiveSheet(0)
	return nil
}

func resultLabel(item ResultItem) string {
	switch {
	case !item.Graded:
		return "Ungraded"
	case item.IsCorrect:
		return "Correct"
	default:
		return "Incorrect"
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
