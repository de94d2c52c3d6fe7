// Package session keeps the in-process registry of live conversations.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"core/internal/model"
)

var (
	// ErrSessionNotFound is returned for unknown, ended or expired sessions
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the registry is full
	ErrTooManySessions = errors.New("too many active sessions")
)

// Session is one user conversation. Its memory lives only as long as the session.
type Session struct {
	ID        string
	CreatedAt time.Time

	turn chan struct{} // one slot, held for the whole of a turn

	mu         sync.RWMutex
	lastActive time.Time
	vocabulary []string
	memory     model.SessionMemory
}

// BeginTurn blocks until no other turn is running on the session and
// returns the function that ends the turn. It gives up with ctx's error if
// ctx ends first.
func (s *Session) BeginTurn(ctx context.Context) (end func(), err error) {
	select {
	case s.turn <- struct{}{}:
		return func() { <-s.turn }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Vocabulary returns the locality vocabulary loaded when the session started
func (s *Session) Vocabulary() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocabulary
}

// Memory returns the current memory snapshot
func (s *Session) Memory() model.SessionMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memory.Clone()
}

// Commit replaces the memory snapshot. Snapshots with an older version are ignored.
func (s *Session) Commit(mem model.SessionMemory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mem.Version < s.memory.Version {
		return
	}
	s.memory = mem.Clone()
}

// Info describes the session for the API
func (s *Session) Info() model.SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.SessionInfo{
		SessionID:     s.ID,
		CreatedAt:     s.CreatedAt,
		LastActive:    s.lastActive,
		LocalityCount: len(s.vocabulary),
		Memory:        s.memory.Clone(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Store is the session registry. Idle sessions are swept lazily on access.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewStore creates a registry; maxSessions <= 0 means unlimited
func NewStore(ttl time.Duration, maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create starts a session with the given vocabulary and fresh memory
func (st *Store) Create(vocabulary []string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweepLocked(now)

	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		return nil, ErrTooManySessions
	}

	if vocabulary == nil {
		vocabulary = []string{}
	}

	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		turn:       make(chan struct{}, 1),
		lastActive: now,
		vocabulary: vocabulary,
		memory:     model.NewSessionMemory(),
	}
	st.sessions[s.ID] = s
	return s, nil
}

// Get returns a live session and marks it active
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweepLocked(now)

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// Delete ends a session and discards its memory
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked(st.now())
	return len(st.sessions)
}

func (st *Store) sweepLocked(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
