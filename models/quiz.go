package models

import (
	"time"

	"gorm.io/gorm"
)

// Difficulty labels shown in the catalog.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Quiz struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	Subject         string         `json:"subject" gorm:"not null"`
	Difficulty      string         `json:"difficulty" gorm:"not null;default:'Easy'"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:15"`
	XPReward        int            `json:"xp_reward" gorm:"not null;default:50"`
	CreatedBy       uint           `json:"created_by" gorm:"not null"`
	IsPublished     bool           `json:"is_published" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Author    User       `json:"author,omitempty" gorm:"foreignKey:CreatedBy"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}
