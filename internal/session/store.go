// Package session holds per-session conversation history in memory.
package session

import (
	"sync"

	"github.com/ai41/adam/internal/types"
)

// Store keeps chat history keyed by session ID. All methods are safe for
// concurrent use. Sessions are created lazily on first Append and are never
// evicted for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[types.SessionID][]types.Turn
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[types.SessionID][]types.Turn),
	}
}

// Get returns a copy of the history for the given session, oldest first.
// An unknown session yields an empty slice.
func (s *Store) Get(id types.SessionID) []types.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[id]
	out := make([]types.Turn, len(turns))
	copy(out, turns)
	return out
}

// Append adds a turn to the end of the session's history, creating the
// session if it does not exist yet.
func (s *Store) Append(id types.SessionID, turn types.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = append(s.sessions[id], turn)
}

// Len returns the number of turns recorded for the session.
func (s *Store) Len(id types.SessionID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions[id])
}

// IDs returns the IDs of all sessions that have at least one turn.
func (s *Store) IDs() []types.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]types.SessionID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
