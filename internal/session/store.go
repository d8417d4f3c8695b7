package session

import (
	"fmt"
	"sync"
	"time"
)

var ErrNotFound = fmt.Errorf("session not found")

// GameSession is one tracked game. State holds a gob-encoded snapshot of
// the engine's game state; the store never looks inside it.
type GameSession struct {
	GameSessionID int64
	PlayerID      *int64
	State         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
}

// Store keeps game sessions in memory. Sessions do not survive a restart.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*GameSession
}

func NewStore() *Store {
	return &Store{items: make(map[int64]*GameSession)}
}

func clone(s *GameSession) *GameSession {
	c := *s
	c.State = append([]byte(nil), s.State...)
	if s.EndedAt != nil {
		endedAt := *s.EndedAt
		c.EndedAt = &endedAt
	}
	return &c
}

// Create registers a new session and returns it with its assigned id.
func (s *Store) Create(playerID *int64, state []byte) *GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	session := &GameSession{
		GameSessionID: s.nextID,
		PlayerID:      playerID,
		State:         append([]byte(nil), state...),
		StartedAt:     time.Now().UTC(),
	}
	s.items[session.GameSessionID] = session
	return clone(session)
}

// Get retrieves a copy of a session. If id is unknown, [ErrNotFound] is
// returned.
func (s *Store) Get(id int64) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(session), nil
}

// Update replaces the stored state snapshot and end time of a session.
func (s *Store) Update(id int64, state []byte, endedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	session.State = append([]byte(nil), state...)
	if endedAt != nil {
		e := *endedAt
		session.EndedAt = &e
	}
	return nil
}

// Delete removes a session without checking if it existed.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
}

// Count reports the number of tracked sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}
