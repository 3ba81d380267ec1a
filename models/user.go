package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values mirror the account types the platform serves.
const (
	RoleStudent = "STUDENT"
	RoleParent  = "PARENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'STUDENT'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Quizzes []Quiz       `json:"quizzes,omitempty" gorm:"foreignKey:CreatedBy"`
	Results []QuizResult `json:"results,omitempty" gorm:"foreignKey:UserID"`
}
