package archive

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tabhoarder/backend/internal/domain/extract"
	"github.com/tabhoarder/backend/internal/shared/id"
	"github.com/tabhoarder/backend/internal/shared/types"
)

// ErrNotFound is returned by id-keyed operations on an absent session.
var ErrNotFound = errors.New("session not found")

// Store owns the canonical ordered collection of collapsed sessions.
// Sessions are immutable once created except for Name. Mutations are
// discrete operations serialized by the store's own lock; callers never
// get a live reference into the collection.
type Store struct {
	mu       sync.RWMutex
	sessions []types.Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: []types.Session{}}
}

// Create snapshots a tab set into a new session: fresh UUID, current
// epoch-millis stamp, and each tab's apex domain captured now so the
// stored record stays stable if extraction rules change later.
func (s *Store) Create(name string, tabs []types.Tab) types.Session {
	saved := make([]types.SavedTab, 0, len(tabs))
	for _, t := range tabs {
		saved = append(saved, types.SavedTab{
			URL:    t.URL,
			Title:  t.Title,
			Domain: extract.Domain(t.URL),
			Pinned: t.Pinned,
		})
	}

	session := types.Session{
		ID:        string(id.NewSessionID()),
		Name:      name,
		Timestamp: time.Now().UnixMilli(),
		Tabs:      saved,
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	s.mu.Unlock()

	return session
}

// Get returns a session by id.
func (s *Store) Get(sessionID string) (types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.ID == sessionID {
			return sess, nil
		}
	}
	return types.Session{}, ErrNotFound
}

// Rename replaces the session's name, the only mutable field.
func (s *Store) Rename(sessionID, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions[i].Name = newName
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a session.
func (s *Store) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Search returns sessions whose name contains the query,
// case-insensitive, preserving storage order among matches. An empty
// query matches everything.
func (s *Store) Search(query string) []types.Session {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]types.Session, 0)
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.Name), q) {
			matches = append(matches, sess)
		}
	}
	return matches
}

// List returns all sessions in storage order.
func (s *Store) List() []types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Metadata returns list-view summaries in storage order.
func (s *Store) Metadata() []types.SessionMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.SessionMetadata, 0, len(s.sessions))
	for i := range s.sessions {
		out = append(out, s.sessions[i].ToMetadata())
	}
	return out
}

// Replace swaps the whole collection, used when loading from
// persistence.
func (s *Store) Replace(sessions []types.Session) {
	if sessions == nil {
		sessions = []types.Session{}
	}
	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
}

// Len reports how many sessions are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
