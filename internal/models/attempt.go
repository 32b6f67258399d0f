package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SkippedAnswer marks a question slot that was never confirmed.
const SkippedAnswer = -1

// QuizAttempt is the append-only record of one completed quiz run. A quiz may
// accumulate many attempts; attempts are never updated after insert.
type QuizAttempt struct {
	ID      string        `gorm:"type:varchar(36);primaryKey"`
	QuizID  string        `gorm:"type:varchar(36);index;not null"`
	UserID  string        `gorm:"type:varchar(36);index;not null"`
	Answers pq.Int64Array `gorm:"type:integer[]"`
	Score   int           `gorm:"not null"`
	Total   int           `gorm:"not null"`

	CreatedAt time.Time
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
