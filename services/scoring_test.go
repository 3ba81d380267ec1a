package services

import (
	"testing"

	"studyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id uint, correct string, points int) models.Question {
	return models.Question{
		ID:            id,
		Text:          "q",
		Type:          models.QuestionShortAnswer,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestScoreQuiz_AllCorrectIgnoresCaseAndWhitespace(t *testing.T) {
	questions := []models.Question{
		question(1, "True", 1),
		question(2, "Paris", 1),
	}
	answers := map[uint]string{
		1: "true",
		2: "PARIS",
	}

	result, err := ScoreQuiz(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, 100, result.ScorePercent)
	assert.Equal(t, 2, result.RawPoints)
	assert.Equal(t, 2, result.TotalPoints)
}

func TestScoreQuiz_SubmittedAnswerIsTrimmed(t *testing.T) {
	questions := []models.Question{question(1, "Paris", 1)}
	answers := map[uint]string{1: "  paris  "}

	result, err := ScoreQuiz(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 100, result.ScorePercent)
}

func TestScoreQuiz_OneOfFourCorrect(t *testing.T) {
	questions := []models.Question{
		question(1, "a", 1),
		question(2, "b", 1),
		question(3, "c", 1),
		question(4, "d", 1),
	}
	answers := map[uint]string{
		1: "a",
		2: "wrong",
		3: "nope",
		4: "",
	}

	result, err := ScoreQuiz(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, 25, result.ScorePercent)
	assert.Equal(t, 1, result.RawPoints)
	assert.Equal(t, 4, result.TotalPoints)
}

func TestScoreQuiz_UnansweredQuestionsEarnNothing(t *testing.T) {
	questions := []models.Question{
		question(1, "a", 3),
		question(2, "b", 2),
	}

	result, err := ScoreQuiz(questions, map[uint]string{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ScorePercent)
	assert.Equal(t, 0, result.RawPoints)
	assert.Equal(t, 5, result.TotalPoints)
}

func TestScoreQuiz_PointWeighting(t *testing.T) {
	questions := []models.Question{
		question(1, "a", 3),
		question(2, "b", 1),
	}
	answers := map[uint]string{1: "a"}

	result, err := ScoreQuiz(questions, answers)
	require.NoError(t, err)

	// 3 of 4 points rounds to 75
	assert.Equal(t, 75, result.ScorePercent)
}

func TestScoreQuiz_PercentRounds(t *testing.T) {
	questions := []models.Question{
		question(1, "a", 1),
		question(2, "b", 1),
		question(3, "c", 1),
	}
	answers := map[uint]string{1: "a"}

	result, err := ScoreQuiz(questions, answers)
	require.NoError(t, err)

	// 1/3 rounds to 33, 2/3 would round to 67
	assert.Equal(t, 33, result.ScorePercent)

	answers[2] = "b"
	result, err = ScoreQuiz(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 67, result.ScorePercent)
}

func TestScoreQuiz_NoQuestionsIsAnError(t *testing.T) {
	_, err := ScoreQuiz(nil, map[uint]string{})
	assert.ErrorIs(t, err, ErrNoScoreableQuestions)
}

func TestScoreQuiz_PercentAlwaysInRange(t *testing.T) {
	questions := []models.Question{
		question(1, "a", 7),
		question(2, "b", 11),
		question(3, "c", 2),
	}

	for _, answers := range []map[uint]string{
		{},
		{1: "a"},
		{1: "a", 2: "b"},
		{1: "a", 2: "b", 3: "c"},
		{1: "x", 2: "y", 3: "z"},
	} {
		result, err := ScoreQuiz(questions, answers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.ScorePercent, 0)
		assert.LessOrEqual(t, result.ScorePercent, 100)
	}
}

func TestAnswersMatch(t *testing.T) {
	assert.True(t, AnswersMatch(" paris ", "Paris"))
	assert.True(t, AnswersMatch("TRUE", "True"))
	assert.False(t, AnswersMatch("pariss", "Paris"))
	assert.False(t, AnswersMatch("", "Paris"))
}
