package services

import (
	"testing"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

func TestScoreAnswers(t *testing.T) {
	twoHalves := []models.Question{mcQuestion("1", "a", 50), mcQuestion("2", "b", 50)}

	tests := []struct {
		name        string
		questions   []models.Question
		answers     []string
		wantScore   int
		wantEarned  int
		wantTotal   int
		wantCorrect []bool
	}{
		{name: "one of two right", questions: twoHalves, answers: []string{"a", "c"}, wantScore: 50, wantEarned: 50, wantTotal: 100, wantCorrect: []bool{true, false}},
		{name: "all right", questions: twoHalves, answers: []string{"a", "b"}, wantScore: 100, wantEarned: 100, wantTotal: 100, wantCorrect: []bool{true, true}},
		{name: "none right", questions: twoHalves, answers: []string{"d", "d"}, wantScore: 0, wantTotal: 100, wantCorrect: []bool{false, false}},
		{name: "exact match only", questions: twoHalves, answers: []string{"A", " b"}, wantScore: 0, wantTotal: 100, wantCorrect: []bool{false, false}},
		{name: "missing trailing answer", questions: twoHalves, answers: []string{"a"}, wantScore: 50, wantEarned: 50, wantTotal: 100, wantCorrect: []bool{true, false}},
		{
			name:        "weighted points",
			questions:   []models.Question{mcQuestion("1", "a", 10), mcQuestion("2", "a", 30)},
			answers:     []string{"b", "a"},
			wantScore:   75,
			wantEarned:  30,
			wantTotal:   40,
			wantCorrect: []bool{false, true},
		},
		{
			name:        "zero total scores zero",
			questions:   []models.Question{mcQuestion("1", "a", 0)},
			answers:     []string{"a"},
			wantScore:   0,
			wantCorrect: []bool{true},
		},
		{
			name: "ungraded coding question",
			questions: []models.Question{
				mcQuestion("1", "a", 50),
				{ID: "2", Prompt: "write a loop", Type: models.Coding, Points: 50},
			},
			answers:     []string{"a", "for {}"},
			wantScore:   50,
			wantEarned:  50,
			wantTotal:   100,
			wantCorrect: []bool{true, false},
		},
		{
			name:        "empty correct answer never matches",
			questions:   []models.Question{mcQuestion("1", "", 10)},
			answers:     []string{""},
			wantScore:   0,
			wantTotal:   10,
			wantCorrect: []bool{false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAnswers(tt.questions, tt.answers)
			if got.Score != tt.wantScore || got.EarnedPoints != tt.wantEarned || got.TotalPoints != tt.wantTotal {
				t.Errorf("ScoreAnswers() = score %d earned %d total %d, want %d %d %d",
					got.Score, got.EarnedPoints, got.TotalPoints, tt.wantScore, tt.wantEarned, tt.wantTotal)
			}
			if len(got.Items) != len(tt.questions) {
				t.Fatalf("len(Items) = %d, want %d", len(got.Items), len(tt.questions))
			}
			for i, want := range tt.wantCorrect {
				if got.Items[i].IsCorrect != want {
					t.Errorf("Items[%d].IsCorrect = %v, want %v", i, got.Items[i].IsCorrect, want)
				}
				if got.Items[i].QuestionID != tt.questions[i].ID {
					t.Errorf("Items[%d].QuestionID = %s, want %s", i, got.Items[i].QuestionID, tt.questions[i].ID)
				}
			}
		})
	}
}

func TestScoreAnswers_GradedFlag(t *testing.T) {
	questions := []models.Question{
		mcQuestion("1", "a", 10),
		{ID: "2", Type: models.Coding, Points: 10},
		{ID: "3", Type: models.Coding, CorrectAnswer: strPtr("42"), Points: 10},
	}
	got := ScoreAnswers(questions, []string{"a", "x", "42"})

	want := []bool{true, false, true}
	for i := range want {
		if got.Items[i].Graded != want[i] {
			t.Errorf("Items[%d].Graded = %v, want %v", i, got.Items[i].Graded, want[i])
		}
	}
	if got.Score != 67 {
		t.Errorf("Score = %d, want 67", got.Score)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		earned, total, want int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{100, 100, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},  // 12.5 rounds up
		{3, 8, 38},  // 37.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
		{1, 201, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.earned, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.earned, tt.total, got, tt.want)
		}
	}
}
