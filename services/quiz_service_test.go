package services

import (
	"testing"

	"studyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() SaveQuestionRequest {
	return SaveQuestionRequest{
		Text:          "What is the capital of France?",
		Type:          models.QuestionMultipleChoice,
		CorrectAnswer: "Paris",
		Options:       []string{"Paris", "Rome", "Berlin", "Madrid"},
		Points:        1,
	}
}

func validRequest() SaveQuizRequest {
	return SaveQuizRequest{
		Title:           "Geography",
		Subject:         "Social Studies",
		Difficulty:      models.DifficultyEasy,
		DurationMinutes: 15,
		XPReward:        50,
		Questions:       []SaveQuestionRequest{validQuestion()},
	}
}

func TestSaveQuizRequest_PublishNeedsAQuestion(t *testing.T) {
	req := validRequest()
	req.Publish = true
	req.Questions = nil

	err := req.validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveQuizRequest_DraftMayBeEmpty(t *testing.T) {
	req := validRequest()
	req.Publish = false
	req.Questions = nil

	assert.NoError(t, req.validate())
}

func TestSaveQuizRequest_TrueFalseAnswerMustBeTrueOrFalse(t *testing.T) {
	req := validRequest()
	req.Questions = []SaveQuestionRequest{{
		Text:          "The sky is green.",
		Type:          models.QuestionTrueFalse,
		CorrectAnswer: "Maybe",
	}}

	assert.ErrorIs(t, req.validate(), ErrValidation)

	req.Questions[0].CorrectAnswer = "False"
	assert.NoError(t, req.validate())
}

func TestSaveQuizRequest_MultipleChoiceAnswerMustBeAnOption(t *testing.T) {
	req := validRequest()
	req.Questions[0].CorrectAnswer = "London"

	assert.ErrorIs(t, req.validate(), ErrValidation)
}

func TestSaveQuizRequest_MultipleChoiceNeedsTwoOptions(t *testing.T) {
	req := validRequest()
	req.Questions[0].Options = []string{"Paris", "", "  ", ""}

	assert.ErrorIs(t, req.validate(), ErrValidation)
}

func TestSaveQuizRequest_ShortAnswerNeedsNoOptions(t *testing.T) {
	req := validRequest()
	req.Questions = []SaveQuestionRequest{{
		Text:          "Name the red planet.",
		Type:          models.QuestionShortAnswer,
		CorrectAnswer: "Mars",
	}}

	assert.NoError(t, req.validate())
}

func TestBuildQuestions_RenumbersFromRequestOrder(t *testing.T) {
	reqs := []SaveQuestionRequest{
		{Text: "third originally", Type: models.QuestionShortAnswer, CorrectAnswer: "c"},
		{Text: "first originally", Type: models.QuestionShortAnswer, CorrectAnswer: "a"},
	}

	questions := buildQuestions(42, reqs)
	require.Len(t, questions, 2)

	assert.Equal(t, uint(42), questions[0].QuizID)
	assert.Equal(t, 1, questions[0].OrderNumber)
	assert.Equal(t, 2, questions[1].OrderNumber)
	assert.Equal(t, "third originally", questions[0].Text)
}

func TestBuildQuestions_DefaultsPointsToOne(t *testing.T) {
	questions := buildQuestions(1, []SaveQuestionRequest{
		{Text: "q", Type: models.QuestionShortAnswer, CorrectAnswer: "a", Points: 0},
	})

	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Points)
}

func TestBuildQuestions_OptionsOnlyForMultipleChoice(t *testing.T) {
	questions := buildQuestions(1, []SaveQuestionRequest{
		{Text: "q", Type: models.QuestionShortAnswer, CorrectAnswer: "a", Options: []string{"stray"}},
		{Text: "q", Type: models.QuestionMultipleChoice, CorrectAnswer: "x", Options: []string{"x", "y", ""}},
	})

	require.Len(t, questions, 2)
	assert.Nil(t, questions[0].Options)
	assert.Equal(t, models.OptionList{"x", "y"}, questions[1].Options)
}
