// internal/types/ids.go
package types

import (
	"strings"

	"github.com/google/uuid"
)

type SessionID string
type RunID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// NewSessionKey builds a deterministic session id from its parts. Used by
// adapters (e.g. telegram) that derive the session from the transport
// identity instead of generating one.
func NewSessionKey(parts ...string) SessionID {
	return SessionID(strings.Join(parts, ":"))
}
