package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/config"
	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/repository"
)

// Scheduler periodically checks every user's review queue and nudges users
// who have cards due.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
}

func NewScheduler(log *zap.Logger, emailService *EmailService) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	if !config.Conf.Reminder.Enabled {
		s.log.Info("Reminder scheduler disabled by config")
		return
	}
	s.log.Info("Starting reminder scheduler...",
		zap.Duration("check_interval", config.Conf.Reminder.CheckInterval))
	go func() {
		ticker := time.NewTicker(config.Conf.Reminder.CheckInterval)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runReminderCheck()
		}
	}()
}

func (s *Scheduler) runReminderCheck() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.log.Debug("Running due-card reminder check", zap.Time("utc_time", now))

	users, err := repository.ListUsersWithDueCards(ctx, now)
	if err != nil {
		s.log.Error("Failed to list users with due cards", zap.Error(err))
		return
	}

	for _, user := range users {
		due, err := repository.CountDueFlashcards(ctx, user.ID, now)
		if err != nil {
			s.log.Error("Failed to count due cards", zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		if due > 0 {
			go s.sendReminder(user, due)
		}
	}
}

func (s *Scheduler) sendReminder(user models.User, due int64) {
	s.emailService.SendDueCardsEmail(user, due)
}
