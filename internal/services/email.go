package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/models"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendDueCardsEmail simulates sending a review reminder email.
func (s *EmailService) SendDueCardsEmail(user models.User, dueCount int64) {
	s.log.Info("Sending review reminder email",
		zap.String("to", user.Email),
		zap.Int64("due_cards", dueCount),
	)
	// Swap in an SMTP client like go-mail to send a templated HTML email here.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: You have %d flashcards due for review\nHi,\nYour StudyMate review queue has %d cards waiting. A short session now keeps the intervals growing.\n\n", user.Email, dueCount, dueCount)
}
