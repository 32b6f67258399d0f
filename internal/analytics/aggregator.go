// Package analytics derives study metrics from the persisted review and
// quiz-attempt history. Every function here is a pure, deterministic read:
// the same history always yields the same output and nothing is written back.
// Absent history produces empty results, not errors — a brand-new user with
// no reviews is an expected steady state.
package analytics

import (
	"sort"
	"time"

	"github.com/LksLvnt/studymate/internal/models"
)

// PassingQuality is the lowest review quality counted as a successful recall.
const PassingQuality = 3

// AccuracyPoint is one calendar day's review accuracy.
type AccuracyPoint struct {
	Date     time.Time `json:"date"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Accuracy float64   `json:"accuracy"`
}

// TopicStat aggregates flashcard reviews and quiz answers for one topic.
// HasData is false when the topic exists on study material but has no
// recorded activity yet; the accuracy is meaningless in that case.
type TopicStat struct {
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
	HasData  bool    `json:"has_data"`
}

// ConfidencePoint is one sample of a card's ease factor over its history.
type ConfidencePoint struct {
	Timestamp  time.Time `json:"timestamp"`
	EaseFactor float64   `json:"ease_factor"`
}

// AccuracyOverTime groups review events by UTC calendar date and computes the
// share of successful recalls per day. Days without events are omitted; gap
// display is the presentation layer's concern.
func AccuracyOverTime(events []models.ReviewEvent) []AccuracyPoint {
	type tally struct{ correct, total int }
	byDay := make(map[time.Time]*tally)

	for _, ev := range events {
		day := ev.CreatedAt.UTC().Truncate(24 * time.Hour)
		t, ok := byDay[day]
		if !ok {
			t = &tally{}
			byDay[day] = t
		}
		t.total++
		if ev.Quality >= PassingQuality {
			t.correct++
		}
	}

	points := make([]AccuracyPoint, 0, len(byDay))
	for day, t := range byDay {
		points = append(points, AccuracyPoint{
			Date:     day,
			Correct:  t.correct,
			Total:    t.total,
			Accuracy: float64(t.correct) / float64(t.total),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// TopicBreakdown computes per-topic accuracy across both review events (via
// the reviewed card's topic) and quiz attempts (via each question's topic).
// Topics present on material but never practiced are included with
// HasData=false. Untagged cards and questions are not aggregated.
func TopicBreakdown(
	events []models.ReviewEvent,
	cards []models.Flashcard,
	attempts []models.QuizAttempt,
	quizzes []models.Quiz,
) []TopicStat {
	stats := make(map[string]*TopicStat)
	touch := func(topic string) *TopicStat {
		s, ok := stats[topic]
		if !ok {
			s = &TopicStat{Topic: topic}
			stats[topic] = s
		}
		return s
	}

	cardTopic := make(map[string]string, len(cards))
	for _, c := range cards {
		cardTopic[c.ID] = c.Topic
		if c.Topic != "" {
			touch(c.Topic)
		}
	}
	quizByID := make(map[string]models.Quiz, len(quizzes))
	for _, q := range quizzes {
		quizByID[q.ID] = q
		for _, question := range q.Questions {
			if question.Topic != "" {
				touch(question.Topic)
			}
		}
	}

	for _, ev := range events {
		topic := cardTopic[ev.FlashcardID]
		if topic == "" {
			continue
		}
		s := touch(topic)
		s.Total++
		if ev.Quality >= PassingQuality {
			s.Correct++
		}
	}

	for _, attempt := range attempts {
		quiz, ok := quizByID[attempt.QuizID]
		if !ok {
			continue
		}
		for i, answer := range attempt.Answers {
			if i >= len(quiz.Questions) {
				break
			}
			question := quiz.Questions[i]
			// Skipped slots are not answers and count toward nothing.
			if question.Topic == "" || answer == models.SkippedAnswer {
				continue
			}
			s := touch(question.Topic)
			s.Total++
			if int(answer) == question.CorrectIndex {
				s.Correct++
			}
		}
	}

	out := make([]TopicStat, 0, len(stats))
	for _, s := range stats {
		if s.Total > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Total)
			s.HasData = true
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// ConfidenceCurve extracts the ease-factor time series for one flashcard from
// its review history. No smoothing is applied here.
func ConfidenceCurve(events []models.ReviewEvent, flashcardID string) []ConfidencePoint {
	var points []ConfidencePoint
	for _, ev := range events {
		if ev.FlashcardID != flashcardID {
			continue
		}
		points = append(points, ConfidencePoint{Timestamp: ev.CreatedAt, EaseFactor: ev.EaseFactor})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
	return points
}
