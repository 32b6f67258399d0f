package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/LksLvnt/studymate/internal/database"
	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/sm2"
)

func CreateFlashcards(ctx context.Context, cards []models.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	return database.DB.WithContext(ctx).Create(&cards).Error
}

func GetFlashcard(ctx context.Context, userID, cardID string) (*models.Flashcard, error) {
	var card models.Flashcard
	result := database.DB.WithContext(ctx).First(&card, "id = ? AND user_id = ?", cardID, userID)
	return &card, translate(result.Error)
}

func ListFlashcards(ctx context.Context, userID string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards)
	return cards, result.Error
}

// ListDueFlashcards returns the user's cards due at or before now, most
// overdue first, newer cards breaking ties.
func ListDueFlashcards(ctx context.Context, userID string, now time.Time) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND next_review <= ?", userID, now).
		Order("next_review ASC, repetitions ASC").
		Find(&cards)
	return cards, result.Error
}

// SaveReviewTx applies a grading outcome to a card and appends its review
// event in one transaction. The card row is only updated if its scheduling
// state still matches the observed snapshot the grade was computed from;
// a lost race returns ErrConflict and writes nothing.
func SaveReviewTx(ctx context.Context, cardID, userID string, observed sm2.State, next sm2.Result, quality int) (*models.ReviewEvent, error) {
	event := &models.ReviewEvent{
		FlashcardID:  cardID,
		UserID:       userID,
		Quality:      quality,
		EaseFactor:   next.State.EaseFactor,
		IntervalDays: next.State.IntervalDays,
		Repetitions:  next.State.Repetitions,
	}
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Flashcard{}).
			Where("id = ? AND user_id = ?", cardID, userID).
			Where("ease_factor = ? AND interval_days = ? AND repetitions = ?",
				observed.EaseFactor, observed.IntervalDays, observed.Repetitions).
			Updates(map[string]interface{}{
				"ease_factor":   next.State.EaseFactor,
				"interval_days": next.State.IntervalDays,
				"repetitions":   next.State.Repetitions,
				"next_review":   next.NextReview,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Flashcard{}).
				Where("id = ? AND user_id = ?", cardID, userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrConflict
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func CountDueFlashcards(ctx context.Context, userID string, now time.Time) (int64, error) {
	var count int64
	result := database.DB.WithContext(ctx).Model(&models.Flashcard{}).
		Where("user_id = ? AND next_review <= ?", userID, now).
		Count(&count)
	return count, result.Error
}

// ListUsersWithDueCards returns the users who have at least one card due.
func ListUsersWithDueCards(ctx context.Context, now time.Time) ([]models.User, error) {
	var users []models.User
	result := database.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN flashcards ON flashcards.user_id = users.id").
		Where("flashcards.next_review <= ?", now).
		Distinct("users.*").
		Find(&users)
	return users, result.Error
}

func ListReviewEvents(ctx context.Context, userID string) ([]models.ReviewEvent, error) {
	var events []models.ReviewEvent
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&events)
	return events, result.Error
}

func ListCardReviewEvents(ctx context.Context, userID, cardID string) ([]models.ReviewEvent, error) {
	var events []models.ReviewEvent
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND flashcard_id = ?", userID, cardID).
		Order("created_at ASC").
		Find(&events)
	return events, result.Error
}
