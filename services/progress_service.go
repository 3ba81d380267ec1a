package services

import (
	"errors"

	"studyhub/models"

	"gorm.io/gorm"
)

// ProgressService serves the dashboard reads: a user's quiz history and
// their XP/level/streak card.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// ListResults returns the user's quiz history, newest first.
func (s *ProgressService) ListResults(userID uint) ([]models.QuizResult, error) {
	results := []models.QuizResult{}
	err := s.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

// GetStats returns the user's accumulator row.
func (s *ProgressService) GetStats(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, errors.New("stats not found")
	}
	return &stats, nil
}
