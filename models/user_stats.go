package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStats is the per-user progress accumulator. The quiz engine only
// ever increments XP; level and streak belong to other flows.
type UserStats struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	XP        int            `json:"xp" gorm:"not null;default:0"`
	Level     int            `json:"level" gorm:"not null;default:1"`
	Streak    int            `json:"streak" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User User `json:"user,omitempty"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
