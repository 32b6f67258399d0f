package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/LksLvnt/studymate/internal/models"
)

func day(d int, hour int) time.Time {
	return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC)
}

func event(cardID string, quality int, at time.Time, ease float64) models.ReviewEvent {
	return models.ReviewEvent{FlashcardID: cardID, Quality: quality, EaseFactor: ease, CreatedAt: at}
}

func TestAccuracyOverTime_GroupsByCalendarDate(t *testing.T) {
	events := []models.ReviewEvent{
		event("c1", 5, day(1, 9), 2.6),
		event("c1", 2, day(1, 21), 2.3),
		event("c2", 4, day(3, 8), 2.6),
	}

	points := AccuracyOverTime(events)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 (empty days omitted)", len(points))
	}

	if !points[0].Date.Equal(day(1, 0)) || points[0].Total != 2 || points[0].Correct != 1 {
		t.Errorf("day 1: %+v, want total=2 correct=1", points[0])
	}
	if math.Abs(points[0].Accuracy-0.5) > 1e-9 {
		t.Errorf("day 1 accuracy = %f, want 0.5", points[0].Accuracy)
	}
	if !points[1].Date.Equal(day(3, 0)) || points[1].Accuracy != 1.0 {
		t.Errorf("day 3: %+v, want accuracy 1.0", points[1])
	}
}

func TestAccuracyOverTime_EmptyHistory(t *testing.T) {
	if points := AccuracyOverTime(nil); len(points) != 0 {
		t.Errorf("empty history yielded %d points", len(points))
	}
}

func TestTopicBreakdown_CombinesReviewsAndQuizAnswers(t *testing.T) {
	cards := []models.Flashcard{
		{ID: "c1", Topic: "Photosynthesis"},
		{ID: "c2", Topic: "Respiration"},
		{ID: "c3"}, // untagged, never aggregated
	}
	events := []models.ReviewEvent{
		event("c1", 5, day(1, 9), 2.6),
		event("c1", 1, day(2, 9), 2.1),
		event("c2", 4, day(1, 9), 2.6),
		event("c3", 5, day(1, 9), 2.6),
	}
	quizzes := []models.Quiz{{
		ID: "q1",
		Questions: models.QuestionList{
			{Prompt: "p1", Options: []string{"a", "b"}, CorrectIndex: 0, Topic: "Photosynthesis"},
			{Prompt: "p2", Options: []string{"a", "b"}, CorrectIndex: 1, Topic: "Respiration"},
		},
	}}
	attempts := []models.QuizAttempt{
		{QuizID: "q1", Answers: pq.Int64Array{0, 0}}, // correct, wrong
	}

	stats := TopicBreakdown(events, cards, attempts, quizzes)
	byTopic := make(map[string]TopicStat)
	for _, s := range stats {
		byTopic[s.Topic] = s
	}

	photo := byTopic["Photosynthesis"]
	if photo.Total != 3 || photo.Correct != 2 {
		t.Errorf("Photosynthesis: %+v, want total=3 correct=2", photo)
	}
	resp := byTopic["Respiration"]
	if resp.Total != 2 || resp.Correct != 1 {
		t.Errorf("Respiration: %+v, want total=2 correct=1", resp)
	}
	if _, ok := byTopic[""]; ok {
		t.Error("untagged material produced a topic entry")
	}
}

func TestTopicBreakdown_UnpracticedTopicHasNoData(t *testing.T) {
	cards := []models.Flashcard{{ID: "c1", Topic: "Glycolysis"}}

	stats := TopicBreakdown(nil, cards, nil, nil)
	if len(stats) != 1 {
		t.Fatalf("got %d stats, want 1", len(stats))
	}
	if stats[0].HasData {
		t.Error("unpracticed topic reported HasData=true")
	}
	if stats[0].Accuracy != 0 || stats[0].Total != 0 {
		t.Errorf("unpracticed topic: %+v, want zero counts", stats[0])
	}
}

func TestTopicBreakdown_SkippedAnswersNotCounted(t *testing.T) {
	quizzes := []models.Quiz{{
		ID: "q1",
		Questions: models.QuestionList{
			{Prompt: "p1", Options: []string{"a", "b"}, CorrectIndex: 0, Topic: "Krebs"},
		},
	}}
	attempts := []models.QuizAttempt{
		{QuizID: "q1", Answers: pq.Int64Array{models.SkippedAnswer}},
	}

	stats := TopicBreakdown(nil, nil, attempts, quizzes)
	if len(stats) != 1 || stats[0].Total != 0 {
		t.Errorf("skipped answer counted: %+v", stats)
	}
}

func TestConfidenceCurve_TracksEaseInOrder(t *testing.T) {
	events := []models.ReviewEvent{
		event("c1", 5, day(3, 9), 2.7),
		event("c1", 5, day(1, 9), 2.6),
		event("c2", 0, day(2, 9), 1.3),
		event("c1", 2, day(5, 9), 2.38),
	}

	curve := ConfidenceCurve(events, "c1")
	if len(curve) != 3 {
		t.Fatalf("got %d points, want 3", len(curve))
	}
	wantEase := []float64{2.6, 2.7, 2.38}
	for i, want := range wantEase {
		if math.Abs(curve[i].EaseFactor-want) > 1e-9 {
			t.Errorf("point %d: ease = %f, want %f", i, curve[i].EaseFactor, want)
		}
	}

	if ConfidenceCurve(events, "missing") != nil {
		t.Error("unknown card should yield an empty curve")
	}
}

func TestAggregation_Deterministic(t *testing.T) {
	cards := []models.Flashcard{{ID: "c1", Topic: "A"}, {ID: "c2", Topic: "B"}}
	events := []models.ReviewEvent{
		event("c1", 5, day(1, 9), 2.6),
		event("c2", 2, day(1, 10), 2.3),
		event("c1", 4, day(2, 9), 2.6),
	}
	quizzes := []models.Quiz{{
		ID:        "q1",
		Questions: models.QuestionList{{Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0, Topic: "A"}},
	}}
	attempts := []models.QuizAttempt{{QuizID: "q1", Answers: pq.Int64Array{0}}}

	// Identical history in, identical output out.
	if !reflect.DeepEqual(AccuracyOverTime(events), AccuracyOverTime(events)) {
		t.Error("AccuracyOverTime is not deterministic")
	}
	if !reflect.DeepEqual(
		TopicBreakdown(events, cards, attempts, quizzes),
		TopicBreakdown(events, cards, attempts, quizzes),
	) {
		t.Error("TopicBreakdown is not deterministic")
	}
	if !reflect.DeepEqual(ConfidenceCurve(events, "c1"), ConfidenceCurve(events, "c1")) {
		t.Error("ConfidenceCurve is not deterministic")
	}
}
