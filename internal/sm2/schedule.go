// Package sm2 implements the SM-2 spaced repetition algorithm that drives
// flashcard review scheduling.
//
// Quality ratings:
//
//	0 — Complete blackout, no recall
//	1 — Incorrect, but upon seeing the answer, remembered
//	2 — Incorrect, but the answer seemed easy to recall
//	3 — Correct with serious difficulty
//	4 — Correct after hesitation
//	5 — Perfect response
package sm2

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidQuality is returned when a review quality is outside [0,5].
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// MinEaseFactor is the floor below which the ease factor never drops.
const MinEaseFactor = 1.3

// State is the scheduling state of a single flashcard.
type State struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

// Result is the scheduling state after applying a review, plus the next
// review timestamp derived from the review moment.
type Result struct {
	State
	NextReview time.Time
}

// Schedule applies one review of the given quality to the card state.
// It is a pure function: the review timestamp is supplied by the caller and
// identical inputs always produce identical outputs. The input state is not
// modified on error.
func Schedule(state State, quality int, reviewedAt time.Time) (Result, error) {
	if quality < 0 || quality > 5 {
		return Result{}, ErrInvalidQuality
	}

	next := state

	if quality < 3 {
		// Recall failed: the repetition streak restarts and the card comes
		// back tomorrow. Ease is still penalized below, so the card stays
		// marked as hard.
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions++
		switch {
		case next.Repetitions == 1:
			next.IntervalDays = 1
		case next.Repetitions == 2:
			next.IntervalDays = 6
		default:
			// Grow the interval by the ease factor as it stood before this
			// review; the ease update applies to the following review.
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * state.EaseFactor))
		}
	}

	// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at 1.3.
	q := float64(quality)
	next.EaseFactor = state.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}

	// Next review is relative to the review moment, not the previous due
	// date; a late review does not compound backlog debt.
	return Result{
		State:      next,
		NextReview: reviewedAt.AddDate(0, 0, next.IntervalDays),
	}, nil
}
