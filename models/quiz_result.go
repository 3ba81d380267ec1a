package models

import (
	"time"

	"gorm.io/gorm"
)

// QuizResult records one completed attempt. Rows are append-only; the
// engine never updates them after insert.
type QuizResult struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	Subject          string         `json:"subject" gorm:"not null"`
	Score            int            `json:"score" gorm:"not null"`
	TotalQuestions   int            `json:"total_questions" gorm:"not null"`
	TimeTakenSeconds int            `json:"time_taken_seconds" gorm:"not null"`
	CompletedAt      time.Time      `json:"completed_at" gorm:"autoCreateTime"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User User `json:"user,omitempty"`
}
