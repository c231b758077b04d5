// Package session keeps bounded per-user conversation memory.
package session

import (
	"sync"

	"github.com/isvaryam/assistant/internal/domain"
	"github.com/isvaryam/assistant/internal/logging"
)

// DefaultWindow is the history cap in entries (five exchanges).
const DefaultWindow = 10

// Store maps session keys to bounded exchange histories. Sessions are
// created lazily on first write and live for the process lifetime.
// All operations are safe for concurrent use; each session carries its
// own mutex so writers on different keys never contend.
type Store struct {
	window   int
	log      *logging.Logger
	mu       sync.RWMutex // guards the sessions map, not its contents
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	history []domain.Exchange
}

// NewStore creates a session store with the given history window.
// A window below 2 falls back to DefaultWindow.
func NewStore(window int, log *logging.Logger) *Store {
	if window < 2 {
		window = DefaultWindow
	}
	return &Store{
		window:   window,
		log:      log.Sub("session"),
		sessions: make(map[string]*session),
	}
}

// Window returns the configured history cap in entries.
func (s *Store) Window() int {
	return s.window
}

// History returns a copy of the session's exchange history, oldest
// first. Unseen keys yield an empty slice; History never fails.
func (s *Store) History(key string) []domain.Exchange {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.Exchange, len(sess.history))
	copy(out, sess.history)
	return out
}

// AppendExchange appends one user/assistant pair to the session's
// history and trims the oldest entries past the window. The two entries
// land atomically; a concurrent reader of the same key sees either both
// or neither.
func (s *Store) AppendExchange(key, userText, assistantText string) {
	sess := s.getOrCreate(key)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = append(sess.history,
		domain.UserExchange(userText),
		domain.AssistantExchange(assistantText),
	)
	if len(sess.history) > s.window {
		sess.history = sess.history[len(sess.history)-s.window:]
	}

	// A history longer than the window after trimming means the
	// invariant was violated somewhere; drop the corrupt state rather
	// than carry it forward.
	if len(sess.history) > s.window {
		s.log.Error().Str("key", key).Int("len", len(sess.history)).
			Msg("session history exceeded window, resetting")
		sess.history = nil
	}
}

// Len returns the current history length for a key.
func (s *Store) Len(key string) int {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.history)
}

// Reset clears a session's history, keeping the key alive.
func (s *Store) Reset(key string) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.history = nil
	sess.mu.Unlock()
	s.log.Info().Str("key", key).Msg("session history reset")
}

// Keys returns all known session keys, in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) getOrCreate(key string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[key]; ok {
		return sess
	}
	sess = &session{}
	s.sessions[key] = sess
	return sess
}
