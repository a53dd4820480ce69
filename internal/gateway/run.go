package gateway

import (
	"context"
	"time"

	"github.com/ai41/adam/internal/types"
)

// RunStatus represents the lifecycle state of a Run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run tracks a single chat turn queued against a session. Fragments
// receives the response text as it is produced and is closed by the
// processor when the turn is over.
type Run struct {
	ID           types.RunID
	SessionID    types.SessionID
	Message      string
	ArtworkNames []string
	Status       RunStatus
	CreatedAt    time.Time

	// Ctx is the request context from the transport; cancellation stops
	// fragment delivery for this run.
	Ctx       context.Context
	Fragments chan string
}

// NewRun creates a Run in the Queued state.
func NewRun(ctx context.Context, sessionID types.SessionID, message string, artworkNames []string) *Run {
	return &Run{
		ID:           types.NewRunID(),
		SessionID:    sessionID,
		Message:      message,
		ArtworkNames: artworkNames,
		Status:       RunStatusQueued,
		CreatedAt:    time.Now(),
		Ctx:          ctx,
		Fragments:    make(chan string),
	}
}
