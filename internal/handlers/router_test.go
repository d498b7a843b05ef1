package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/events"
	"github.com/SAP-F-2025/lms-assessment-service/internal/repositories/memory"
	"github.com/SAP-F-2025/lms-assessment-service/internal/services"
	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
	"github.com/SAP-F-2025/lms-assessment-service/internal/validator"
)

type testIdentity struct {
	id   string
	role string
}

var (
	instructor = testIdentity{id: "faculty-1", role: "faculty"}
	student    = testIdentity{id: "student-1", role: "student"}
)

func newTestRouter(t *testing.T, seed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sm := services.NewServiceManager(
		memory.NewMemoryRepository(),
		slogLogger,
		validator.New(),
		events.NewMockEventPublisher(slogLogger),
		services.ServiceManagerConfig{IDStrategy: "sequence", SeedDemoData: seed},
	)
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	router := gin.New()
	logger := utils.NewSlogLogger(slogLogger)
	SetupMiddleware(router, logger)
	NewHandlerManager(sm, logger).SetupRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, as testIdentity, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as.id != "" {
		req.Header.Set(HeaderUserID, as.id)
		req.Header.Set(HeaderUserRole, as.role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, want, w.Body.String())
	}
}

// authorQuiz finalizes a two-question quiz, 50 points each, correct answer "A"
func authorQuiz(t *testing.T, router *gin.Engine) (assessmentID string, questionIDs []string) {
	t.Helper()
	expectStatus(t, doRequest(t, router, instructor, http.MethodPut, "/api/v1/drafts", map[string]string{
		"title":       "Midterm",
		"description": "Covers chapters 1-3",
		"due_date":    "2024-04-15",
		"course_id":   "1",
	}), http.StatusOK)

	for _, prompt := range []string{"First", "Second"} {
		expectStatus(t, doRequest(t, router, instructor, http.MethodPost, "/api/v1/drafts/questions", map[string]interface{}{
			"prompt":         prompt,
			"type":           "multiple-choice",
			"options":        []string{"A", "B", "C", "D"},
			"correct_answer": "A",
			"points":         50,
		}), http.StatusCreated)
	}

	w := doRequest(t, router, instructor, http.MethodPost, "/api/v1/drafts/finalize", nil)
	expectStatus(t, w, http.StatusCreated)
	created := decode[struct {
		ID          string `json:"id"`
		TotalPoints int    `json:"total_points"`
		Status      string `json:"status"`
		Questions   []struct {
			ID string `json:"id"`
		} `json:"questions"`
	}](t, w)

	if created.TotalPoints != 100 || created.Status != "pending" {
		t.Fatalf("finalized = %+v, want 100 points pending", created)
	}
	for _, q := range created.Questions {
		questionIDs = append(questionIDs, q.ID)
	}
	return created.ID, questionIDs
}

func TestRoutes_AuthorTakeAndViewResult(t *testing.T) {
	router := newTestRouter(t, false)
	id, qids := authorQuiz(t, router)

	w := doRequest(t, router, student, http.MethodPost, "/api/v1/attempts", map[string]string{"assessment_id": id})
	expectStatus(t, w, http.StatusCreated)
	view := decode[struct {
		Assessment struct {
			Questions []map[string]interface{} `json:"questions"`
		} `json:"assessment"`
		Unanswered []string `json:"unanswered"`
	}](t, w)
	for _, q := range view.Assessment.Questions {
		if _, leaked := q["correct_answer"]; leaked {
			t.Fatal("attempt view exposes correct answers")
		}
	}
	if len(view.Unanswered) != 2 {
		t.Fatalf("unanswered = %v, want 2 ids", view.Unanswered)
	}

	// answered out of order
	expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
		map[string]string{"question_id": qids[1], "answer": "A"}), http.StatusOK)
	expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
		map[string]string{"question_id": qids[0], "answer": "B"}), http.StatusOK)

	w = doRequest(t, router, student, http.MethodPost, "/api/v1/attempts/current/submit", nil)
	expectStatus(t, w, http.StatusOK)
	submission := decode[services.SubmissionResult](t, w)
	if submission.Result.Score != 50 {
		t.Errorf("score = %d, want 50", submission.Result.Score)
	}
	if got := submission.Assessment.Answers; len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("stored answers = %v, want [B A]", got)
	}

	w = doRequest(t, router, student, http.MethodGet, "/api/v1/results/"+id, nil)
	expectStatus(t, w, http.StatusOK)
	result := decode[services.ResultView](t, w)
	if result.Score != 50 || len(result.Items) != 2 {
		t.Fatalf("result = %+v", result)
	}
	if result.Items[0].Answer != "B" || result.Items[0].IsCorrect {
		t.Errorf("item 0 = %+v, want wrong answer B", result.Items[0])
	}
	if result.Items[1].Answer != "A" || !result.Items[1].IsCorrect {
		t.Errorf("item 1 = %+v, want correct answer A", result.Items[1])
	}

	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/results/current/minimize", nil), http.StatusOK)
	w = doRequest(t, router, student, http.MethodGet, "/api/v1/results/current", nil)
	expectStatus(t, w, http.StatusOK)
	if window := decode[services.ResultWindow](t, w); !window.Minimized || window.AssessmentID != id {
		t.Errorf("window = %+v, want minimized on %s", window, id)
	}
	expectStatus(t, doRequest(t, router, student, http.MethodDelete, "/api/v1/results/current", nil), http.StatusOK)
	expectStatus(t, doRequest(t, router, student, http.MethodGet, "/api/v1/results/current", nil), http.StatusNotFound)

	// taken once
	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts",
		map[string]string{"assessment_id": id}), http.StatusConflict)
}

func TestRoutes_FinalizeEmptyDraftReportsReasons(t *testing.T) {
	router := newTestRouter(t, false)

	w := doRequest(t, router, instructor, http.MethodPost, "/api/v1/drafts/finalize", nil)
	expectStatus(t, w, http.StatusBadRequest)
	resp := decode[struct {
		Details struct {
			Reasons []string `json:"reasons"`
		} `json:"details"`
	}](t, w)

	want := []string{"missing_title", "missing_description", "missing_due_date", "no_questions"}
	if len(resp.Details.Reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", resp.Details.Reasons, want)
	}
	for i := range want {
		if resp.Details.Reasons[i] != want[i] {
			t.Errorf("reasons[%d] = %s, want %s", i, resp.Details.Reasons[i], want[i])
		}
	}

	w = doRequest(t, router, instructor, http.MethodGet, "/api/v1/assessments", nil)
	expectStatus(t, w, http.StatusOK)
	if count := decode[struct {
		Count int `json:"count"`
	}](t, w).Count; count != 0 {
		t.Errorf("store count = %d after rejected finalize, want 0", count)
	}
}

func TestRoutes_AddQuestionValidation(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{
			name: "empty prompt",
			body: map[string]interface{}{"prompt": "  ", "type": "multiple-choice", "points": 10},
			want: http.StatusBadRequest,
		},
		{
			name: "too many options",
			body: map[string]interface{}{"prompt": "p", "type": "multiple-choice", "options": []string{"a", "b", "c", "d", "e"}},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown type",
			body: map[string]interface{}{"prompt": "p", "type": "essay"},
			want: http.StatusBadRequest,
		},
		{
			name: "coding without correct answer",
			body: map[string]interface{}{"prompt": "Write fizzbuzz", "type": "coding", "points": 30},
			want: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, doRequest(t, router, instructor, http.MethodPost, "/api/v1/drafts/questions", tt.body), tt.want)
		})
	}
}

func TestRoutes_IncompleteSubmission(t *testing.T) {
	router := newTestRouter(t, false)
	id, qids := authorQuiz(t, router)

	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts",
		map[string]string{"assessment_id": id}), http.StatusCreated)
	expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
		map[string]string{"question_id": qids[0], "answer": "A"}), http.StatusOK)

	w := doRequest(t, router, student, http.MethodPost, "/api/v1/attempts/current/submit", nil)
	expectStatus(t, w, http.StatusUnprocessableEntity)
	resp := decode[struct {
		Details struct {
			Remaining int      `json:"remaining"`
			Missing   []string `json:"missing"`
		} `json:"details"`
	}](t, w)
	if resp.Details.Remaining != 1 || len(resp.Details.Missing) != 1 || resp.Details.Missing[0] != qids[1] {
		t.Errorf("details = %+v, want one missing %s", resp.Details, qids[1])
	}

	w = doRequest(t, router, student, http.MethodGet, "/api/v1/assessments/"+id, nil)
	expectStatus(t, w, http.StatusOK)
	if status := decode[struct {
		Status string `json:"status"`
	}](t, w).Status; status != "pending" {
		t.Errorf("status = %s after incomplete submit, want pending", status)
	}

	// answers retained
	w = doRequest(t, router, student, http.MethodGet, "/api/v1/attempts/current", nil)
	expectStatus(t, w, http.StatusOK)
	if unanswered := decode[services.AttemptView](t, w).Unanswered; len(unanswered) != 1 {
		t.Errorf("unanswered = %v, want 1", unanswered)
	}
}

func TestRoutes_AbandonRequiresConfirmation(t *testing.T) {
	router := newTestRouter(t, true)

	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts",
		map[string]string{"assessment_id": "demo-python"}), http.StatusCreated)
	expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
		map[string]string{"question_id": "1", "answer": "def"}), http.StatusOK)

	expectStatus(t, doRequest(t, router, student, http.MethodDelete, "/api/v1/attempts/current", nil), http.StatusBadRequest)
	expectStatus(t, doRequest(t, router, student, http.MethodGet, "/api/v1/attempts/current", nil), http.StatusOK)

	expectStatus(t, doRequest(t, router, student, http.MethodDelete, "/api/v1/attempts/current?confirm=true", nil), http.StatusOK)
	expectStatus(t, doRequest(t, router, student, http.MethodGet, "/api/v1/attempts/current", nil), http.StatusNotFound)
}

func TestRoutes_ErrorMapping(t *testing.T) {
	router := newTestRouter(t, true)

	tests := []struct {
		name   string
		as     testIdentity
		method string
		path   string
		body   interface{}
		want   int
	}{
		{name: "no identity", as: testIdentity{}, method: http.MethodGet, path: "/api/v1/assessments", want: http.StatusUnauthorized},
		{name: "unknown role", as: testIdentity{id: "x", role: "janitor"}, method: http.MethodGet, path: "/api/v1/assessments", want: http.StatusUnauthorized},
		{name: "student drafting", as: student, method: http.MethodGet, path: "/api/v1/drafts", want: http.StatusForbidden},
		{name: "faculty taking", as: instructor, method: http.MethodPost, path: "/api/v1/attempts", body: map[string]string{"assessment_id": "demo-python"}, want: http.StatusForbidden},
		{name: "student deleting", as: student, method: http.MethodDelete, path: "/api/v1/assessments/demo-python", want: http.StatusForbidden},
		{name: "unknown assessment", as: student, method: http.MethodGet, path: "/api/v1/assessments/nope", want: http.StatusNotFound},
		{name: "start unknown assessment", as: student, method: http.MethodPost, path: "/api/v1/attempts", body: map[string]string{"assessment_id": "nope"}, want: http.StatusNotFound},
		{name: "start without id", as: student, method: http.MethodPost, path: "/api/v1/attempts", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "no draft", as: instructor, method: http.MethodGet, path: "/api/v1/drafts", want: http.StatusNotFound},
		{name: "no attempt", as: student, method: http.MethodPost, path: "/api/v1/attempts/current/submit", want: http.StatusNotFound},
		{name: "result of pending", as: student, method: http.MethodGet, path: "/api/v1/results/demo-python", want: http.StatusConflict},
		{name: "feedback on pending", as: instructor, method: http.MethodPut, path: "/api/v1/assessments/demo-python/feedback", body: map[string]string{"feedback": "ok"}, want: http.StatusConflict},
		{name: "remove unknown is a no-op", as: instructor, method: http.MethodDelete, path: "/api/v1/assessments/nope", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, doRequest(t, router, tt.as, tt.method, tt.path, tt.body), tt.want)
		})
	}
}

func TestRoutes_RecordAnswerUnknownQuestion(t *testing.T) {
	router := newTestRouter(t, true)

	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts",
		map[string]string{"assessment_id": "demo-javascript"}), http.StatusCreated)
	expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
		map[string]string{"question_id": "99", "answer": "x"}), http.StatusBadRequest)
}

func TestRoutes_FeedbackAndExport(t *testing.T) {
	router := newTestRouter(t, false)
	id, qids := authorQuiz(t, router)

	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts",
		map[string]string{"assessment_id": id}), http.StatusCreated)
	for _, qid := range qids {
		expectStatus(t, doRequest(t, router, student, http.MethodPut, "/api/v1/attempts/current/answers",
			map[string]string{"question_id": qid, "answer": "A"}), http.StatusOK)
	}
	expectStatus(t, doRequest(t, router, student, http.MethodPost, "/api/v1/attempts/current/submit", nil), http.StatusOK)

	expectStatus(t, doRequest(t, router, instructor, http.MethodPut, "/api/v1/assessments/"+id+"/feedback",
		map[string]string{"feedback": "Well done"}), http.StatusOK)

	w := doRequest(t, router, student, http.MethodGet, "/api/v1/results/"+id, nil)
	expectStatus(t, w, http.StatusOK)
	result := decode[services.ResultView](t, w)
	if result.Score != 100 || result.Feedback == nil || *result.Feedback != "Well done" {
		t.Errorf("result = score %d feedback %v, want 100 and feedback", result.Score, result.Feedback)
	}

	w = doRequest(t, router, instructor, http.MethodGet, "/api/v1/assessments/"+id+"/export", nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}
	if got := w.Header().Get("Content-Disposition"); got == "" {
		t.Error("missing Content-Disposition header")
	}
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, false)

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}
