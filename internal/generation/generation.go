// Package generation is the boundary to the content-generation collaborator.
// The pipeline that turns document chunks into study material is opaque to
// this service; everything arriving through it is treated as given input and
// only structurally validated before it becomes rows.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/LksLvnt/studymate/internal/models"
)

// CardPayload is one generated flashcard as delivered by the collaborator.
type CardPayload struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
	Topic string `json:"topic"`
}

// QuestionPayload is one generated quiz question.
type QuestionPayload struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Topic        string   `json:"topic"`
}

// Generator produces study material from ordered document chunks. The
// implementation lives outside this service; its output quality is never
// judged here.
type Generator interface {
	StudyGuide(ctx context.Context, chunks []string, subject string) (title, markdown string, err error)
	Flashcards(ctx context.Context, chunks []string, count int, subject string) ([]CardPayload, error)
	Quiz(ctx context.Context, chunks []string, count int, subject string) (title string, questions []QuestionPayload, err error)
}

var validate = validator.New()

// ValidateCards structurally validates a generated flashcard set.
func ValidateCards(cards []CardPayload) error {
	if len(cards) == 0 {
		return fmt.Errorf("generated flashcard set is empty")
	}
	for i, card := range cards {
		if err := validate.Struct(card); err != nil {
			return fmt.Errorf("flashcard %d: %w", i, err)
		}
	}
	return nil
}

// ValidateQuestions structurally validates a generated question set:
// non-empty prompts, at least two options, and a correct_index that points
// into the option list.
func ValidateQuestions(questions []QuestionPayload) error {
	if len(questions) == 0 {
		return fmt.Errorf("generated question set is empty")
	}
	for i, q := range questions {
		if err := validate.Struct(q); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correct_index %d out of range for %d options", i, q.CorrectIndex, len(q.Options))
		}
	}
	return nil
}

// ParseCards decodes and validates a raw JSON flashcard payload.
func ParseCards(data []byte) ([]CardPayload, error) {
	var cards []CardPayload
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("flashcard payload is not valid JSON: %w", err)
	}
	if err := ValidateCards(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ParseQuestions decodes and validates a raw JSON question payload.
func ParseQuestions(data []byte) ([]QuestionPayload, error) {
	var questions []QuestionPayload
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("question payload is not valid JSON: %w", err)
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// BuildFlashcards materializes validated payloads into flashcard rows with
// the scheduling defaults for brand-new cards: due immediately, default ease.
func BuildFlashcards(doc *models.Document, payloads []CardPayload, now time.Time) []models.Flashcard {
	cards := make([]models.Flashcard, len(payloads))
	for i, p := range payloads {
		cards[i] = models.Flashcard{
			DocumentID:   doc.ID,
			UserID:       doc.UserID,
			Front:        p.Front,
			Back:         p.Back,
			Topic:        p.Topic,
			EaseFactor:   models.DefaultEaseFactor,
			IntervalDays: 0,
			Repetitions:  0,
			NextReview:   now,
		}
	}
	return cards
}

// BuildQuiz materializes validated payloads into a quiz row.
func BuildQuiz(doc *models.Document, title string, payloads []QuestionPayload) models.Quiz {
	questions := make(models.QuestionList, len(payloads))
	for i, p := range payloads {
		questions[i] = models.Question{
			Prompt:       p.Question,
			Options:      p.Options,
			CorrectIndex: p.CorrectIndex,
			Explanation:  p.Explanation,
			Topic:        p.Topic,
		}
	}
	return models.Quiz{
		DocumentID: doc.ID,
		UserID:     doc.UserID,
		Title:      title,
		Questions:  questions,
	}
}
