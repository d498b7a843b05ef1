package services

import (
	"strconv"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

type demoQuestion struct {
	prompt  string
	options []string
	correct string
}

// DemoAssessments returns fresh copies of the two demo quizzes, 5 questions of 20 points each
func DemoAssessments() []*models.Assessment {
	return []*models.Assessment{
		demoAssessment("demo-javascript", "JavaScript Fundamentals Quiz",
			"Test your knowledge of JavaScript core concepts and features", "1", "2024-04-15",
			[]demoQuestion{
				{"What is the output of: typeof null?", []string{"object", "null", "undefined", "number"}, "object"},
				{"Which method is used to add elements to the end of an array?", []string{"push()", "unshift()", "append()", "add()"}, "push()"},
				{"What is the correct way to check if a variable is an array?", []string{"Array.isArray(variable)", `typeof variable === "array"`, "variable instanceof Array", "variable.isArray()"}, "Array.isArray(variable)"},
				{"Which statement creates a closure in JavaScript?", []string{"A function defined inside another function", "A function with a return statement", "A function with parameters", "A function using this keyword"}, "A function defined inside another function"},
				{`What is the output of: 3 + "3"?`, []string{`"33"`, "6", "undefined", "NaN"}, `"33"`},
			}),
		demoAssessment("demo-python", "Python Programming Concepts",
			"Comprehensive assessment of Python programming fundamentals", "2", "2024-04-20",
			[]demoQuestion{
				{"What is the correct way to create a list comprehension in Python?", []string{"[x for x in range(10)]", "for x in range(10): [x]", "list(x for x in range(10))", "[x in range(10)]"}, "[x for x in range(10)]"},
				{"Which of the following is immutable in Python?", []string{"Tuple", "List", "Dictionary", "Set"}, "Tuple"},
				{"What is the output of: len(set([1, 2, 2, 3, 3, 3]))?", []string{"3", "6", "1", "4"}, "3"},
				{"Which method is used to remove and return the last element from a list?", []string{"pop()", "remove()", "delete()", "discard()"}, "pop()"},
				{"What is the correct way to catch multiple exceptions in Python?", []string{"except (TypeError, ValueError):", "catch TypeError, ValueError:", "except TypeError or ValueError:", "catch (TypeError | ValueError):"}, "except (TypeError, ValueError):"},
			}),
	}
}

func demoAssessment(id, title, description, courseID, dueDate string, questions []demoQuestion) *models.Assessment {
	a := &models.Assessment{
		ID:          id,
		Title:       title,
		Description: description,
		CourseID:    courseID,
		DueDate:     dueDate,
		Status:      models.StatusPending,
		CreatedBy:   "system",
		Questions:   make([]models.Question, len(questions)),
	}
	for i, dq := range questions {
		correct := dq.correct
		a.Questions[i] = models.Question{
			ID:            strconv.Itoa(i + 1),
			Prompt:        dq.prompt,
			Type:          models.MultipleChoice,
			Options:       dq.options,
			CorrectAnswer: &correct,
			Points:        20,
			Position:      i,
		}
	}
	a.TotalPoints = a.SumPoints()
	return a
}
