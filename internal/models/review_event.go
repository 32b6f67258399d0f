package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewEvent is an append-only record of one flashcard review. The scheduling
// fields are the card's state AFTER the review was applied, so the event log
// replays to the card's current state. Events are never updated or deleted.
type ReviewEvent struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	FlashcardID string `gorm:"type:varchar(36);index;not null"`
	UserID      string `gorm:"type:varchar(36);index;not null"`
	Quality     int    `gorm:"not null"`

	// Post-review scheduling snapshot.
	EaseFactor   float64 `gorm:"not null"`
	IntervalDays int     `gorm:"not null"`
	Repetitions  int     `gorm:"not null"`

	CreatedAt time.Time
}

func (e *ReviewEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
