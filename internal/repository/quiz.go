package repository

import (
	"context"

	"github.com/LksLvnt/studymate/internal/database"
	"github.com/LksLvnt/studymate/internal/models"
)

func CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	return database.DB.WithContext(ctx).Create(quiz).Error
}

func GetQuiz(ctx context.Context, userID, quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	result := database.DB.WithContext(ctx).First(&quiz, "id = ? AND user_id = ?", quizID, userID)
	return &quiz, translate(result.Error)
}

func ListQuizzes(ctx context.Context, userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes)
	return quizzes, result.Error
}

// SaveQuizAttempt appends a completed run's attempt record. Attempts are
// insert-only.
func SaveQuizAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	return database.DB.WithContext(ctx).Create(attempt).Error
}

func ListQuizAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&attempts)
	return attempts, result.Error
}

func ListAttemptsForQuiz(ctx context.Context, userID, quizID string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		Find(&attempts)
	return attempts, result.Error
}
