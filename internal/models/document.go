package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document statuses. A document is created as processing and moves to ready
// once its text has been chunked, or to error if extraction failed.
const (
	DocumentProcessing = "processing"
	DocumentReady      = "ready"
	DocumentError      = "error"
)

type Document struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	UserID     string `gorm:"type:varchar(36);index;not null"`
	Filename   string `gorm:"not null"`
	Subject    string
	PageCount  int
	ChunkCount int
	Status     string `gorm:"type:varchar(20);default:processing"`
	CreatedAt  time.Time

	Chunks      []DocumentChunk `gorm:"constraint:OnDelete:CASCADE"`
	Flashcards  []Flashcard     `gorm:"constraint:OnDelete:CASCADE"`
	Quizzes     []Quiz          `gorm:"constraint:OnDelete:CASCADE"`
	StudyGuides []StudyGuide    `gorm:"constraint:OnDelete:CASCADE"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DocumentChunk is one slice of a document's extracted text, in reading order.
type DocumentChunk struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	DocumentID string `gorm:"type:varchar(36);index;not null"`
	ChunkIndex int    `gorm:"not null"`
	Content    string `gorm:"type:text;not null"`
}

func (c *DocumentChunk) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// StudyGuide is generated markdown study material for a document.
type StudyGuide struct {
	ID              string `gorm:"type:varchar(36);primaryKey"`
	DocumentID      string `gorm:"type:varchar(36);index;not null"`
	Title           string `gorm:"not null"`
	ContentMarkdown string `gorm:"type:text;not null"`
	CreatedAt       time.Time
}

func (g *StudyGuide) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
