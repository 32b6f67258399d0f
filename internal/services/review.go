package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/repository"
	"github.com/LksLvnt/studymate/internal/sm2"
)

// ReviewStore is the persistence surface the review flow needs. The
// production implementation delegates to the repository package.
type ReviewStore interface {
	GetFlashcard(ctx context.Context, userID, cardID string) (*models.Flashcard, error)
	SaveReview(ctx context.Context, cardID, userID string, observed sm2.State, next sm2.Result, quality int) (*models.ReviewEvent, error)
}

type gormReviewStore struct{}

func (gormReviewStore) GetFlashcard(ctx context.Context, userID, cardID string) (*models.Flashcard, error) {
	return repository.GetFlashcard(ctx, userID, cardID)
}

func (gormReviewStore) SaveReview(ctx context.Context, cardID, userID string, observed sm2.State, next sm2.Result, quality int) (*models.ReviewEvent, error) {
	return repository.SaveReviewTx(ctx, cardID, userID, observed, next, quality)
}

// ReviewService grades flashcard reviews. Grading reads the card's scheduling
// state, computes the next state, and persists it conditionally on the state
// it read; a concurrent grade of the same card is retried once against the
// fresh state before the conflict is surfaced.
type ReviewService struct {
	log   *zap.Logger
	store ReviewStore
	now   func() time.Time
}

func NewReviewService(log *zap.Logger) *ReviewService {
	return &ReviewService{log: log, store: gormReviewStore{}, now: time.Now}
}

// GradeCard applies one review of quality 0..5 to the card and returns the
// card's updated scheduling state together with the appended review event.
func (s *ReviewService) GradeCard(ctx context.Context, userID, cardID string, quality int) (*models.Flashcard, *models.ReviewEvent, error) {
	const attempts = 2

	var lastErr error
	for i := 0; i < attempts; i++ {
		card, err := s.store.GetFlashcard(ctx, userID, cardID)
		if err != nil {
			return nil, nil, err
		}

		observed := sm2.State{
			EaseFactor:   card.EaseFactor,
			IntervalDays: card.IntervalDays,
			Repetitions:  card.Repetitions,
		}
		next, err := sm2.Schedule(observed, quality, s.now())
		if err != nil {
			return nil, nil, err
		}

		event, err := s.store.SaveReview(ctx, cardID, userID, observed, next, quality)
		if err == nil {
			card.EaseFactor = next.State.EaseFactor
			card.IntervalDays = next.State.IntervalDays
			card.Repetitions = next.State.Repetitions
			card.NextReview = next.NextReview
			return card, event, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, nil, err
		}
		lastErr = err
		s.log.Warn("review lost a concurrent update, retrying",
			zap.String("flashcard_id", cardID),
			zap.String("user_id", userID),
		)
	}
	return nil, nil, lastErr
}
