// Package quizsession implements the state machine governing one quiz
// attempt: question presentation, answer confirmation, scoring, and the
// emission of a single attempt record per completed run.
package quizsession

import (
	"errors"
	"sync"

	"github.com/lib/pq"

	"github.com/LksLvnt/studymate/internal/models"
)

// State is the phase of a quiz session.
type State int

const (
	// StateListing is the default: no quiz active, the quiz list is shown.
	StateListing State = iota
	// StateInProgress means a question is on screen.
	StateInProgress
	// StateFinished is terminal for an attempt; retry or exit from here.
	StateFinished
)

var (
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
	ErrQuizInProgress   = errors.New("a quiz is already in progress")
	ErrNoSelection      = errors.New("no option selected")
	ErrAlreadyConfirmed = errors.New("answer already confirmed")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrNotFinished      = errors.New("quiz not finished")
)

// questionResult records what happened on one question. Correctness is fixed
// at confirmation time and never re-derived afterwards.
type questionResult struct {
	selected  int
	confirmed bool
	correct   bool
}

// Session is the authoritative state of one user's quiz run. Methods are safe
// for concurrent use; sessions for different quizzes are independent.
type Session struct {
	mu sync.Mutex

	state     State
	quiz      *models.Quiz
	userID    string
	index     int
	selected  int
	confirmed bool
	score     int
	results   []questionResult
}

// NewSession returns a session in the Listing state.
func NewSession(userID string) *Session {
	return &Session{userID: userID, selected: models.SkippedAnswer}
}

// Start begins an attempt at the first question of the given quiz.
func (s *Session) Start(quiz *models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateInProgress {
		return ErrQuizInProgress
	}
	s.begin(quiz)
	return nil
}

func (s *Session) begin(quiz *models.Quiz) {
	s.state = StateInProgress
	s.quiz = quiz
	s.index = 0
	s.selected = models.SkippedAnswer
	s.confirmed = false
	s.score = 0
	s.results = make([]questionResult, len(quiz.Questions))
	for i := range s.results {
		s.results[i].selected = models.SkippedAnswer
	}
}

// Select records a tentative answer for the current question. Re-selecting
// overwrites the prior choice; selection is rejected once confirmed.
func (s *Session) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNoActiveQuiz
	}
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	if option < 0 || option >= len(s.quiz.Questions[s.index].Options) {
		return ErrInvalidOption
	}
	s.selected = option
	return nil
}

// Confirm locks in the current selection and scores it. This is terminal for
// the question. Returns whether the confirmed answer was correct.
func (s *Session) Confirm() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false, ErrNoActiveQuiz
	}
	if s.confirmed {
		return false, ErrAlreadyConfirmed
	}
	if s.selected == models.SkippedAnswer {
		return false, ErrNoSelection
	}

	correct := s.selected == s.quiz.Questions[s.index].CorrectIndex
	s.confirmed = true
	s.results[s.index] = questionResult{selected: s.selected, confirmed: true, correct: correct}
	if correct {
		s.score++
	}
	return correct, nil
}

// Next advances to the following question, or finishes the attempt when the
// current question is the last. Finishing returns the one attempt record for
// this run; the caller is responsible for persisting it. Unconfirmed
// questions are recorded as skipped and score nothing.
func (s *Session) Next() (*models.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return nil, ErrNoActiveQuiz
	}

	if s.index < len(s.quiz.Questions)-1 {
		s.index++
		s.selected = models.SkippedAnswer
		s.confirmed = false
		return nil, nil
	}

	s.state = StateFinished
	return s.buildAttempt(), nil
}

// buildAttempt assembles the attempt record from the per-question results.
// Score sums the correctness decided at each Confirm, never a recomputation.
func (s *Session) buildAttempt() *models.QuizAttempt {
	answers := make(pq.Int64Array, len(s.results))
	for i, r := range s.results {
		if r.confirmed {
			answers[i] = int64(r.selected)
		} else {
			answers[i] = models.SkippedAnswer
		}
	}
	return &models.QuizAttempt{
		QuizID:  s.quiz.ID,
		UserID:  s.userID,
		Answers: answers,
		Score:   s.score,
		Total:   len(s.quiz.Questions),
	}
}

// Retry starts a fresh attempt at the same quiz. The prior attempt record is
// untouched.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFinished {
		return ErrNotFinished
	}
	s.begin(s.quiz)
	return nil
}

// Exit returns to the listing state, discarding any in-progress run. An
// abandoned run never produces an attempt record.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateListing
	s.quiz = nil
	s.results = nil
	s.selected = models.SkippedAnswer
	s.confirmed = false
	s.score = 0
	s.index = 0
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot describes the visible state of a session for the API layer.
type Snapshot struct {
	State     State            `json:"state"`
	QuizID    string           `json:"quiz_id,omitempty"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Selected  int              `json:"selected"`
	Confirmed bool             `json:"confirmed"`
	Correct   *bool            `json:"correct,omitempty"`
	Score     int              `json:"score"`
	Question  *models.Question `json:"question,omitempty"`
}

// Snapshot returns a copy of the session's visible state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Index:     s.index,
		Selected:  s.selected,
		Confirmed: s.confirmed,
		Score:     s.score,
	}
	if s.quiz != nil {
		snap.QuizID = s.quiz.ID
		snap.Total = len(s.quiz.Questions)
		if s.state == StateInProgress {
			q := s.quiz.Questions[s.index]
			snap.Question = &q
			if s.confirmed {
				correct := s.results[s.index].correct
				snap.Correct = &correct
			}
		}
	}
	return snap
}
