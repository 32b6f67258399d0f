package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is one multiple-choice question inside a quiz. Questions are
// immutable once generated.
type Question struct {
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Topic        string   `json:"topic,omitempty"`
}

// QuestionList stores a quiz's ordered question set as a jsonb column.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("cannot scan %T into QuestionList", value)
	}
}

type Quiz struct {
	ID         string       `gorm:"type:varchar(36);primaryKey"`
	DocumentID string       `gorm:"type:varchar(36);index;not null"`
	UserID     string       `gorm:"type:varchar(36);index;not null"`
	Title      string       `gorm:"not null"`
	Questions  QuestionList `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
