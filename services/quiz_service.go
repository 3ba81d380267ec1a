package services

import (
	"errors"
	"fmt"
	"strings"

	"studyhub/models"

	"gorm.io/gorm"
)

// ErrValidation marks authoring input problems. Handlers map it to a 400
// and the author's in-memory draft is never touched by the server.
var ErrValidation = errors.New("validation failed")

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type SaveQuizRequest struct {
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description"`
	Subject         string                `json:"subject" binding:"required"`
	Difficulty      string                `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	DurationMinutes int                   `json:"duration_minutes" binding:"required,min=1"`
	XPReward        int                   `json:"xp_reward" binding:"min=0"`
	Publish         bool                  `json:"publish"`
	Questions       []SaveQuestionRequest `json:"questions"`
}

type SaveQuestionRequest struct {
	Text          string   `json:"question_text" binding:"required"`
	Type          string   `json:"question_type" binding:"required,oneof=multiple_choice true_false short_answer"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Options       []string `json:"options"`
	Points        int      `json:"points"`
}

// validate applies the rules binding tags cannot express: the publish
// invariant and the per-type answer rules.
func (req *SaveQuizRequest) validate() error {
	if req.Publish && len(req.Questions) == 0 {
		return fmt.Errorf("%w: a quiz needs at least one question before it can be published", ErrValidation)
	}

	for i, q := range req.Questions {
		switch q.Type {
		case models.QuestionTrueFalse:
			if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
				return fmt.Errorf("%w: question %d: true/false answer must be True or False", ErrValidation, i+1)
			}
		case models.QuestionMultipleChoice:
			options := nonBlankOptions(q.Options)
			if len(options) < 2 {
				return fmt.Errorf("%w: question %d: multiple choice needs at least two options", ErrValidation, i+1)
			}
			if !containsFold(options, q.CorrectAnswer) {
				return fmt.Errorf("%w: question %d: correct answer must be one of the options", ErrValidation, i+1)
			}
		}
		if q.Points < 0 {
			return fmt.Errorf("%w: question %d: points must be positive", ErrValidation, i+1)
		}
	}

	return nil
}

func nonBlankOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			out = append(out, opt)
		}
	}
	return out
}

func containsFold(options []string, answer string) bool {
	for _, opt := range options {
		if AnswersMatch(answer, opt) {
			return true
		}
	}
	return false
}

// buildQuestions converts the request rows into model rows for quizID,
// renumbering order 1..N from the author's current in-memory order.
func buildQuestions(quizID uint, reqs []SaveQuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqs))
	for i, q := range reqs {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		var options models.OptionList
		if q.Type == models.QuestionMultipleChoice {
			options = nonBlankOptions(q.Options)
		}
		questions = append(questions, models.Question{
			QuizID:        quizID,
			Text:          q.Text,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Options:       options,
			Points:        points,
			OrderNumber:   i + 1,
		})
	}
	return questions
}

// CreateQuiz persists the quiz and its questions in one transaction, so
// a failure partway through leaves no orphaned quiz row behind.
func (s *QuizService) CreateQuiz(userID uint, req *SaveQuizRequest) (*models.Quiz, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz := models.Quiz{
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		Difficulty:      req.Difficulty,
		DurationMinutes: req.DurationMinutes,
		XPReward:        req.XPReward,
		CreatedBy:       userID,
		IsPublished:     req.Publish,
	}

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if questions := buildQuestions(quiz.ID, req.Questions); len(questions) > 0 {
		if err := tx.Create(&questions).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuizByID(quiz.ID, userID)
}

// UpdateQuiz replaces the quiz metadata and its whole question set. The
// question list is treated as owned by the quiz, so old rows go away.
func (s *QuizService) UpdateQuiz(quizID uint, userID uint, req *SaveQuizRequest) (*models.Quiz, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	quiz, err := s.GetQuizByID(quizID, userID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Subject = req.Subject
	quiz.Difficulty = req.Difficulty
	quiz.DurationMinutes = req.DurationMinutes
	quiz.XPReward = req.XPReward
	quiz.IsPublished = req.Publish
	quiz.Questions = nil

	if err := tx.Save(quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if questions := buildQuestions(quiz.ID, req.Questions); len(questions) > 0 {
		if err := tx.Create(&questions).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuizByID(quiz.ID, userID)
}

// SetPublished toggles visibility. Publishing re-checks the at-least-one
// question invariant against what is actually stored.
func (s *QuizService) SetPublished(quizID uint, userID uint, published bool) (*models.Quiz, error) {
	quiz, err := s.GetQuizByID(quizID, userID)
	if err != nil {
		return nil, err
	}

	if published && len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: a quiz needs at least one question before it can be published", ErrValidation)
	}

	if err := s.db.Model(quiz).Update("is_published", published).Error; err != nil {
		return nil, err
	}

	quiz.IsPublished = published
	return quiz, nil
}

// ListPublished returns the catalog every signed-in user sees, newest
// first. An empty catalog is a normal result.
func (s *QuizService) ListPublished() ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	err := s.db.Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListOwn returns all of an author's quizzes, drafts included.
func (s *QuizService) ListOwn(authorID uint) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	err := s.db.Where("created_by = ?", authorID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_number")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// GetQuizByID loads an author's own quiz with its ordered questions.
func (s *QuizService) GetQuizByID(quizID uint, userID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND created_by = ?", quizID, userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_number")
		}).
		First(&quiz).Error
	return &quiz, err
}

// GetAttemptableQuiz loads a quiz for a session: published for anyone,
// drafts only for their author.
func (s *QuizService) GetAttemptableQuiz(quizID uint, userID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND (is_published = ? OR created_by = ?)", quizID, true, userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_number")
		}).
		First(&quiz).Error
	return &quiz, err
}

// DeleteQuiz soft-deletes an author's quiz.
func (s *QuizService) DeleteQuiz(quizID uint, userID uint) error {
	if _, err := s.GetQuizByID(quizID, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.Quiz{}, quizID).Error
}
