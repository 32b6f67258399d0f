package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scheduling defaults for freshly generated flashcards.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

type Flashcard struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	DocumentID string `gorm:"type:varchar(36);index;not null"`
	UserID     string `gorm:"type:varchar(36);index;not null"`
	Front      string `gorm:"type:text;not null"`
	Back       string `gorm:"type:text;not null"`
	Topic      string

	// SM-2 scheduling state. Mutated only through the review flow.
	EaseFactor   float64   `gorm:"default:2.5"`
	IntervalDays int       `gorm:"default:0"`
	Repetitions  int       `gorm:"default:0"`
	NextReview   time.Time `gorm:"index"`

	CreatedAt time.Time
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
