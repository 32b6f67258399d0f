package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/repository"
	"github.com/LksLvnt/studymate/internal/sm2"
)

// fakeReviewStore serves a single card and can inject conflicts on the first
// N save attempts to exercise the retry path.
type fakeReviewStore struct {
	card      models.Flashcard
	conflicts int
	saves     []sm2.Result
	getCalls  int
}

func (f *fakeReviewStore) GetFlashcard(ctx context.Context, userID, cardID string) (*models.Flashcard, error) {
	f.getCalls++
	if cardID != f.card.ID {
		return nil, repository.ErrNotFound
	}
	card := f.card
	return &card, nil
}

func (f *fakeReviewStore) SaveReview(ctx context.Context, cardID, userID string, observed sm2.State, next sm2.Result, quality int) (*models.ReviewEvent, error) {
	if f.conflicts > 0 {
		f.conflicts--
		// Simulate the racing writer landing first.
		f.card.Repetitions++
		return nil, repository.ErrConflict
	}
	if observed.EaseFactor != f.card.EaseFactor ||
		observed.IntervalDays != f.card.IntervalDays ||
		observed.Repetitions != f.card.Repetitions {
		return nil, repository.ErrConflict
	}
	f.card.EaseFactor = next.State.EaseFactor
	f.card.IntervalDays = next.State.IntervalDays
	f.card.Repetitions = next.State.Repetitions
	f.card.NextReview = next.NextReview
	f.saves = append(f.saves, next)
	return &models.ReviewEvent{
		FlashcardID:  cardID,
		UserID:       userID,
		Quality:      quality,
		EaseFactor:   next.State.EaseFactor,
		IntervalDays: next.State.IntervalDays,
		Repetitions:  next.State.Repetitions,
	}, nil
}

func newTestReviewService(store ReviewStore, now time.Time) *ReviewService {
	return &ReviewService{
		log:   zap.NewNop(),
		store: store,
		now:   func() time.Time { return now },
	}
}

func TestGradeCardPersistsNewSchedule(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	store := &fakeReviewStore{card: models.Flashcard{
		ID:           "card-1",
		UserID:       "user-1",
		EaseFactor:   2.5,
		IntervalDays: 1,
		Repetitions:  1,
	}}
	svc := newTestReviewService(store, now)

	card, event, err := svc.GradeCard(context.Background(), "user-1", "card-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, card.Repetitions)
	assert.Equal(t, 6, card.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 6), card.NextReview)
	require.NotNil(t, event)
	assert.Equal(t, 5, event.Quality)
	assert.Equal(t, card.EaseFactor, event.EaseFactor)
	require.Len(t, store.saves, 1)
}

func TestGradeCardRetriesOnceOnConflict(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	store := &fakeReviewStore{
		card: models.Flashcard{
			ID:           "card-1",
			UserID:       "user-1",
			EaseFactor:   2.5,
			IntervalDays: 1,
			Repetitions:  1,
		},
		conflicts: 1,
	}
	svc := newTestReviewService(store, now)

	card, _, err := svc.GradeCard(context.Background(), "user-1", "card-1", 4)
	require.NoError(t, err)

	// The retry re-read the card, so the grade applied to the fresh state.
	assert.Equal(t, 2, store.getCalls)
	assert.Equal(t, 3, card.Repetitions)
}

func TestGradeCardSurfacesConflictAfterRetry(t *testing.T) {
	store := &fakeReviewStore{
		card:      models.Flashcard{ID: "card-1", UserID: "user-1", EaseFactor: 2.5},
		conflicts: 2,
	}
	svc := newTestReviewService(store, time.Now())

	_, _, err := svc.GradeCard(context.Background(), "user-1", "card-1", 3)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, 2, store.getCalls)
}

func TestGradeCardUnknownCard(t *testing.T) {
	store := &fakeReviewStore{card: models.Flashcard{ID: "card-1"}}
	svc := newTestReviewService(store, time.Now())

	_, _, err := svc.GradeCard(context.Background(), "user-1", "missing", 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGradeCardRejectsOutOfRangeQuality(t *testing.T) {
	store := &fakeReviewStore{card: models.Flashcard{ID: "card-1", EaseFactor: 2.5}}
	svc := newTestReviewService(store, time.Now())

	for _, q := range []int{-1, 6, 42} {
		_, _, err := svc.GradeCard(context.Background(), "user-1", "card-1", q)
		assert.ErrorIs(t, err, sm2.ErrInvalidQuality, "quality %d", q)
	}
	assert.Empty(t, store.saves)
}
