package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

// ===== ASSESSMENT =====

type AssessmentService interface {
	List(ctx context.Context, filters repositories.AssessmentFilters, viewer *models.User) ([]*models.Assessment, error)
	GetByID(ctx context.Context, id string, viewer *models.User) (*models.Assessment, error)
	Remove(ctx context.Context, id string, user *models.User) error
	SetFeedback(ctx context.Context, id string, req *validator.FeedbackRequest, user *models.User) (*models.Assessment, error)
	SeedDemoData(ctx context.Context) error
}

// ===== AUTHORING =====

// Draft is an author's assessment under construction
type Draft struct {
	AuthorID    string            `json:"author_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     string            `json:"due_date"`
	CourseID    string            `json:"course_id"`
	Questions   []models.Question `json:"questions"`
	TotalPoints int               `json:"total_points"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type AuthoringService interface {
	StartDraft(ctx context.Context, author *models.User) (*Draft, error)
	GetDraft(ctx context.Context, author *models.User) (*Draft, error)
	UpdateDraftDetails(ctx context.Context, author *models.User, req *validator.DraftDetailsRequest) (*Draft, error)
	AddQuestion(ctx context.Context, author *models.User, req *validator.QuestionDraftRequest) (*Draft, error)
	DiscardDraft(ctx context.Context, author *models.User) error
	Finalize(ctx context.Context, author *models.User) (*models.Assessment, error)
}

// ===== TAKING =====

// AttemptView is the active attempt plus the assessment being taken,
// with correct answers removed.
type AttemptView struct {
	Attempt    *models.Attempt    `json:"attempt"`
	Assessment *models.Assessment `json:"assessment"`
	Unanswered []string           `json:"unanswered"`
}

type SubmissionResult struct {
	Assessment *models.Assessment `json:"assessment"`
	Result     ScoreResult        `json:"result"`
}

type AttemptService interface {
	Start(ctx context.Context, student *models.User, assessmentID string) (*AttemptView, error)
	RecordAnswer(ctx context.Context, student *models.User, req *validator.RecordAnswerRequest) (*AttemptView, error)
	Submit(ctx context.Context, student *models.User) (*SubmissionResult, error)
	Abandon(ctx context.Context, student *models.User, confirmed bool) error
	Current(ctx context.Context, student *models.User) (*AttemptView, error)
}

// ===== RESULTS =====

type ResultItem struct {
	Position      int                 `json:"position"`
	QuestionID    string              `json:"question_id"`
	Prompt        string              `json:"prompt"`
	Type          models.QuestionType `json:"type"`
	Options       []string            `json:"options,omitempty"`
	Answer        string              `json:"answer"`
	CorrectAnswer *string             `json:"correct_answer,omitempty"`
	IsCorrect     bool                `json:"is_correct"`
	Graded        bool                `json:"graded"`
	Points        int                 `json:"points"`
}

type ResultView struct {
	AssessmentID string       `json:"assessment_id"`
	Title        string       `json:"title"`
	Score        int          `json:"score"`
	TotalPoints  int          `json:"total_points"`
	Feedback     *string      `json:"feedback,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	Items        []ResultItem `json:"items"`
}

// ResultWindow is a viewer's open result panel
type ResultWindow struct {
	AssessmentID string    `json:"assessment_id"`
	Minimized    bool      `json:"minimized"`
	OpenedAt     time.Time `json:"opened_at"`
}

type ResultService interface {
	Open(ctx context.Context, viewer *models.User, assessmentID string) (*ResultView, error)
	Current(ctx context.Context, viewer *models.User) (*ResultWindow, error)
	Minimize(ctx context.Context, viewer *models.User) (*ResultWindow, error)
	Restore(ctx context.Context, viewer *models.User) (*ResultWindow, error)
	Close(ctx context.Context, viewer *models.User) error
}

// ===== EXPORT =====

type ExportService interface {
	ExportResults(ctx context.Context, w io.Writer, user *models.User, assessmentIDs ...string) error
}

// ===== MANAGER =====

type ServiceManager interface {
	Assessment() AssessmentService
	Authoring() AuthoringService
	Attempt() AttemptService
	Result() ResultService
	Export() ExportService
	Dashboard() DashboardService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
