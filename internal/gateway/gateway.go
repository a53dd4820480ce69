// Package gateway serializes chat turns per session and bounds global
// concurrency. It is the required entry point for transports: the response
// pipeline itself does not lock per session, so all turns must pass through
// a session's lane here.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ai41/adam/internal/archive"
	"github.com/ai41/adam/internal/curator"
	"github.com/ai41/adam/internal/types"
)

// Gateway queues inbound chat turns, drives the response pipeline for each,
// and archives the session transcript after every completed turn.
type Gateway struct {
	orchestrator *curator.Orchestrator
	sessions     types.SessionStore
	archives     *archive.Store
	Queue        *Queue
	retry        *RetryPolicy
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Gateway with the given concurrency limit for simultaneous
// turn processing.
func New(orchestrator *curator.Orchestrator, sessions types.SessionStore, archives *archive.Store, maxConcurrent int64, logger *slog.Logger) *Gateway {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	g := &Gateway{
		orchestrator: orchestrator,
		sessions:     sessions,
		archives:     archives,
		Queue:        NewQueue(maxConcurrent),
		retry:        DefaultRetryPolicy(),
		logger:       logger,
	}
	g.Queue.SetProcessor(g.process)
	return g
}

// Start initialises the gateway's context and starts the internal queue.
func (g *Gateway) Start(ctx context.Context) {
	g.ctx, g.cancel = context.WithCancel(ctx)
	g.Queue.Start(g.ctx)
}

// Stop cancels the gateway context, stops the queue, and waits for any
// outstanding work to finish.
func (g *Gateway) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
	g.Queue.Stop()
	g.wg.Wait()
}

// Chat enqueues one turn for the session and returns the channel its
// response fragments will arrive on. The channel is closed when the turn is
// over. Turns for the same session run strictly in enqueue order.
func (g *Gateway) Chat(ctx context.Context, sessionID types.SessionID, message string, artworkNames []string) (<-chan string, error) {
	run := NewRun(ctx, sessionID, message, artworkNames)
	if err := g.Queue.Enqueue(run); err != nil {
		close(run.Fragments)
		return nil, fmt.Errorf("enqueue turn: %w", err)
	}
	return run.Fragments, nil
}

// process drives the pipeline for one run, forwarding fragments to the
// transport, then archives the session's transcript.
func (g *Gateway) process(run *Run) error {
	defer close(run.Fragments)

	fragments := g.orchestrator.Respond(run.Ctx, run.SessionID, run.Message, run.ArtworkNames)
	for fragment := range fragments {
		select {
		case run.Fragments <- fragment:
		case <-run.Ctx.Done():
			// The transport is gone; keep draining so the pipeline can
			// finish its history bookkeeping.
			for range fragments {
			}
		}
	}

	snapshot := g.sessions.Get(run.SessionID)
	err := g.retry.Execute(func() error {
		return g.archives.Save(run.SessionID, snapshot)
	})
	if err != nil {
		return fmt.Errorf("archiving session %s: %w", run.SessionID, err)
	}
	return nil
}
