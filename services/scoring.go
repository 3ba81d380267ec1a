package services

import (
	"errors"
	"math"
	"strings"

	"studyhub/models"
)

// ErrNoScoreableQuestions means the question set carried zero total
// points, which a published quiz should never do.
var ErrNoScoreableQuestions = errors.New("quiz has no scoreable questions")

// ScoreResult is the outcome of grading one attempt.
type ScoreResult struct {
	ScorePercent int `json:"score_percent"`
	RawPoints    int `json:"raw_points"`
	TotalPoints  int `json:"total_points"`
}

// ScoreQuiz grades a submitted answer map against the quiz questions.
// Matching is exact after trimming whitespace and folding case, so
// " paris " counts against "Paris". Unanswered questions earn nothing.
// Pure function, no I/O.
func ScoreQuiz(questions []models.Question, answers map[uint]string) (ScoreResult, error) {
	result := ScoreResult{}

	for _, q := range questions {
		result.TotalPoints += q.Points
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		if AnswersMatch(answer, q.CorrectAnswer) {
			result.RawPoints += q.Points
		}
	}

	if result.TotalPoints == 0 {
		return ScoreResult{}, ErrNoScoreableQuestions
	}

	result.ScorePercent = int(math.Round(float64(result.RawPoints) / float64(result.TotalPoints) * 100))
	return result, nil
}

// AnswersMatch compares a submitted answer with the correct one,
// ignoring surrounding whitespace and letter case.
func AnswersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
