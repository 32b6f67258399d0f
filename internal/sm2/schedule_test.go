package sm2

import (
	"errors"
	"math"
	"testing"
	"time"
)

var reviewedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSchedule_RejectsQualityOutOfRange(t *testing.T) {
	state := State{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0}
	for _, q := range []int{-1, 6, 100} {
		_, err := Schedule(state, q, reviewedAt)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("quality %d: got err %v, want ErrInvalidQuality", q, err)
		}
	}
}

func TestSchedule_FailedRecallResetsStreak(t *testing.T) {
	// Any quality < 3 resets repetitions and brings the card back tomorrow,
	// regardless of prior state.
	priors := []State{
		{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0},
		{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2},
		{EaseFactor: 1.8, IntervalDays: 45, Repetitions: 7},
	}
	for _, prior := range priors {
		for q := 0; q < 3; q++ {
			got, err := Schedule(prior, q, reviewedAt)
			if err != nil {
				t.Fatalf("Schedule(%+v, %d) error: %v", prior, q, err)
			}
			if got.Repetitions != 0 {
				t.Errorf("quality %d: repetitions = %d, want 0", q, got.Repetitions)
			}
			if got.IntervalDays != 1 {
				t.Errorf("quality %d: interval = %d, want 1", q, got.IntervalDays)
			}
		}
	}
}

func TestSchedule_SuccessIncrementsRepetitions(t *testing.T) {
	prior := State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}
	for q := 3; q <= 5; q++ {
		got, err := Schedule(prior, q, reviewedAt)
		if err != nil {
			t.Fatalf("Schedule error: %v", err)
		}
		if got.Repetitions != prior.Repetitions+1 {
			t.Errorf("quality %d: repetitions = %d, want %d", q, got.Repetitions, prior.Repetitions+1)
		}
	}
}

func TestSchedule_IntervalLadderFromFreshCard(t *testing.T) {
	// Consecutive perfect recalls from a fresh card: 1, 6, then the interval
	// grows by the ease factor in effect before each review.
	state := State{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0}

	wantIntervals := []int{1, 6}
	for i, want := range wantIntervals {
		res, err := Schedule(state, 5, reviewedAt)
		if err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
		if res.IntervalDays != want {
			t.Errorf("review %d: interval = %d, want %d", i+1, res.IntervalDays, want)
		}
		state = res.State
	}

	// Third review: ease is now 2.7, so 6 * 2.7 rounds to 16.
	res, err := Schedule(state, 5, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	if res.IntervalDays != 16 {
		t.Errorf("third interval = %d, want 16", res.IntervalDays)
	}
	if !almostEqual(res.EaseFactor, 2.8) {
		t.Errorf("ease after three perfect reviews = %f, want 2.8", res.EaseFactor)
	}
}

func TestSchedule_EaseNeverBelowFloor(t *testing.T) {
	for _, ease := range []float64{1.3, 1.5, 2.0, 2.5, 3.2} {
		for q := 0; q <= 5; q++ {
			got, err := Schedule(State{EaseFactor: ease, IntervalDays: 4, Repetitions: 2}, q, reviewedAt)
			if err != nil {
				t.Fatal(err)
			}
			if got.EaseFactor < MinEaseFactor {
				t.Errorf("ease %f quality %d: result ease %f below floor", ease, q, got.EaseFactor)
			}
		}
	}
}

func TestSchedule_ScenarioFreshCardTwoReviews(t *testing.T) {
	// Fresh card, quality 5.
	first, err := Schedule(State{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0}, 5, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	if first.Repetitions != 1 || first.IntervalDays != 1 {
		t.Errorf("first review: reps=%d interval=%d, want 1/1", first.Repetitions, first.IntervalDays)
	}
	if !almostEqual(first.EaseFactor, 2.6) {
		t.Errorf("first review: ease = %f, want 2.6", first.EaseFactor)
	}

	// Second review, quality 4: the q=4 delta is zero, so ease holds at 2.6.
	second, err := Schedule(first.State, 4, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	if second.Repetitions != 2 || second.IntervalDays != 6 {
		t.Errorf("second review: reps=%d interval=%d, want 2/6", second.Repetitions, second.IntervalDays)
	}
	if math.Abs(second.EaseFactor-2.6) > 0.01 {
		t.Errorf("second review: ease = %f, want ~2.6", second.EaseFactor)
	}
}

func TestSchedule_ScenarioFailureOnMatureCard(t *testing.T) {
	// Mature card failed with quality 1: streak resets, ease drops.
	got, err := Schedule(State{EaseFactor: 2.2, IntervalDays: 10, Repetitions: 3}, 1, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	if got.Repetitions != 0 || got.IntervalDays != 1 {
		t.Errorf("reps=%d interval=%d, want 0/1", got.Repetitions, got.IntervalDays)
	}
	// q=1 delta is -0.54.
	if !almostEqual(got.EaseFactor, 1.66) {
		t.Errorf("ease = %f, want 1.66", got.EaseFactor)
	}

	// The same failure on an already-floored card clamps at 1.3.
	floored, err := Schedule(State{EaseFactor: 1.3, IntervalDays: 10, Repetitions: 3}, 0, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(floored.EaseFactor, MinEaseFactor) {
		t.Errorf("floored ease = %f, want %f", floored.EaseFactor, MinEaseFactor)
	}
}

func TestSchedule_NextReviewRelativeToReviewMoment(t *testing.T) {
	got, err := Schedule(State{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 1}, 5, reviewedAt)
	if err != nil {
		t.Fatal(err)
	}
	want := reviewedAt.AddDate(0, 0, got.IntervalDays)
	if !got.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", got.NextReview, want)
	}
}

func TestSchedule_Pure(t *testing.T) {
	state := State{EaseFactor: 2.31, IntervalDays: 12, Repetitions: 4}
	a, errA := Schedule(state, 3, reviewedAt)
	b, errB := Schedule(state, 3, reviewedAt)
	if errA != nil || errB != nil {
		t.Fatal(errA, errB)
	}
	if a != b {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}
