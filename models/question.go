package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Question types supported by the quiz engine.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// OptionList stores the ordered multiple-choice options as a jsonb column.
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported type for OptionList")
	}
}

type Question struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Text          string         `json:"question_text" gorm:"not null"`
	Type          string         `json:"question_type" gorm:"not null;default:'multiple_choice'"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	Options       OptionList     `json:"options" gorm:"type:jsonb"`
	Points        int            `json:"points" gorm:"not null;default:1"`
	OrderNumber   int            `json:"order_number" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Quiz Quiz `json:"quiz,omitempty"`
}

func (Question) TableName() string {
	return "quiz_questions"
}
