package services

import (
	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

// QuestionScore is the grading outcome of one question
type QuestionScore struct {
	QuestionID    string  `json:"question_id"`
	Answer        string  `json:"answer"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
	IsCorrect     bool    `json:"is_correct"`
	// Graded is false for questions without a correct answer; they never earn points
	Graded bool `json:"graded"`
	Points int  `json:"points"`
	Earned int  `json:"earned"`
}

type ScoreResult struct {
	Items        []QuestionScore `json:"items"`
	EarnedPoints int             `json:"earned_points"`
	TotalPoints  int             `json:"total_points"`
	Score        int             `json:"score"`
}

// ScoreAnswers grades positional answers against questions by exact string
// equality. Missing trailing answers count as empty.
func ScoreAnswers(questions []models.Question, answers []string) ScoreResult {
	result := ScoreResult{Items: make([]QuestionScore, len(questions))}

	for i := range questions {
		q := &questions[i]
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}

		item := QuestionScore{
			QuestionID: q.ID,
			Answer:     answer,
			Points:     q.Points,
			Graded:     q.HasCorrectAnswer(),
		}
		if q.CorrectAnswer != nil {
			correct := *q.CorrectAnswer
			item.CorrectAnswer = &correct
		}
		if item.Graded && answer == *q.CorrectAnswer {
			item.IsCorrect = true
			item.Earned = q.Points
		}

		result.TotalPoints += q.Points
		result.EarnedPoints += item.Earned
		result.Items[i] = item
	}

	result.Score = Percentage(result.EarnedPoints, result.TotalPoints)
	return result
}

// Percentage returns round(100*earned/total) with halves rounding up.
// A zero total scores 0.
func Percentage(earned, total int) int {
	if total <= 0 {
		return 0
	}
	// floor(100*earned/total + 1/2) in integer arithmetic
	return (200*earned + total) / (2 * total)
}
