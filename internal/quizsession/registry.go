package quizsession

import "sync"

// Registry tracks the live quiz session per (user, quiz) pair. Sessions are
// in-memory only: an abandoned session simply ages out with the process, per
// the no-partial-persistence rule.
type Registry struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

type sessionKey struct {
	userID string
	quizID string
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[sessionKey]*Session)}
}

// Get returns the live session for the pair, or nil if none exists.
func (r *Registry) Get(userID, quizID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionKey{userID, quizID}]
}

// GetOrCreate returns the live session for the pair, creating a fresh
// Listing-state session if none exists.
func (r *Registry) GetOrCreate(userID, quizID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{userID, quizID}
	if s, ok := r.sessions[key]; ok {
		return s
	}
	s := NewSession(userID)
	r.sessions[key] = s
	return s
}

// Remove drops the session for the pair, if any.
func (r *Registry) Remove(userID, quizID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionKey{userID, quizID})
}
