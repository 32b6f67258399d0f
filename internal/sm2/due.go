package sm2

import (
	"sort"
	"time"

	"github.com/LksLvnt/studymate/internal/models"
)

// IsDue reports whether a card is due at or before the given time.
func IsDue(card *models.Flashcard, now time.Time) bool {
	return !card.NextReview.After(now)
}

// SortDue orders cards for a review session: oldest-due first, ties broken by
// repetition count ascending so the least-practiced material surfaces first.
// The repository's due-card query applies the same ordering in SQL; this
// covers cards already held in memory.
func SortDue(cards []models.Flashcard) {
	sort.SliceStable(cards, func(i, j int) bool {
		if !cards[i].NextReview.Equal(cards[j].NextReview) {
			return cards[i].NextReview.Before(cards[j].NextReview)
		}
		return cards[i].Repetitions < cards[j].Repetitions
	})
}
