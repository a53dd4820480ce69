// Package curator implements the exhibition's response pipeline: language
// detection, prompt assembly, the model/fallback dispatch and the streaming
// contract exposed to transports.
package curator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ai41/adam/internal/types"
	"github.com/ai41/adam/pkg/llm"
)

type streamStatus int

const (
	streamCompleted streamStatus = iota
	streamFaulted
	streamCanceled
)

// Orchestrator composes the pipeline into a single Respond operation. A nil
// provider routes every turn to the fallback responder. Callers must
// serialize Respond calls per session; the orchestrator does not lock
// across turns.
type Orchestrator struct {
	provider llm.Provider
	sessions types.SessionStore
	catalog  types.Catalog
	prompts  *PromptBuilder
	fallback *Responder
	model    string
	window   int
	timeout  time.Duration
	logger   *slog.Logger
}

// Options configures an Orchestrator.
type Options struct {
	// Provider is the model backend; nil means fallback-only mode.
	Provider llm.Provider
	Sessions types.SessionStore
	Catalog  types.Catalog
	Prompts  *PromptBuilder
	// Model is the active model name, reported by Model().
	Model string
	// HistoryWindow caps how many prior turns enter the model payload.
	HistoryWindow int
	// Timeout bounds a single model call; <= 0 means no bound.
	Timeout time.Duration
	Logger  *slog.Logger
}

// New creates an orchestrator from the given collaborators.
func New(opts Options) *Orchestrator {
	window := opts.HistoryWindow
	if window <= 0 {
		window = 10
	}
	return &Orchestrator{
		provider: opts.Provider,
		sessions: opts.Sessions,
		catalog:  opts.Catalog,
		prompts:  opts.Prompts,
		fallback: NewResponder(opts.Catalog),
		model:    opts.Model,
		window:   window,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Configured reports whether a model backend is available.
func (o *Orchestrator) Configured() bool { return o.provider != nil }

// Model returns the active model name.
func (o *Orchestrator) Model() string { return o.model }

// History returns the session's transcript, oldest first.
func (o *Orchestrator) History(id types.SessionID) []types.Turn {
	return o.sessions.Get(id)
}

// Respond runs one turn of the pipeline and returns a channel of response
// fragments. The channel is closed when the turn is over; a turn always
// delivers some text (model output, or fallback text when the backend is
// absent or faults). The user turn is recorded before generation starts and
// exactly one assistant turn is recorded when the stream ends, including
// best-effort partial text when ctx is canceled mid-stream.
func (o *Orchestrator) Respond(ctx context.Context, sessionID types.SessionID, message string, artworkNames []string) <-chan string {
	out := make(chan string)
	go o.run(ctx, out, sessionID, message, artworkNames)
	return out
}

func (o *Orchestrator) run(ctx context.Context, out chan<- string, sessionID types.SessionID, message string, artworkNames []string) {
	defer close(out)

	o.sessions.Append(sessionID, types.Turn{Role: types.RoleUser, Content: message})

	subset := o.resolveSubset(artworkNames)
	lang := DetectLanguage(message)
	systemPrompt := o.prompts.SystemPrompt(lang)

	o.logger.Debug("turn started",
		"session", sessionID,
		"language", lang,
		"context_bytes", len(o.prompts.BuildContext(subset)),
		"model_backed", o.provider != nil)

	var acc strings.Builder
	defer func() {
		o.sessions.Append(sessionID, types.Turn{Role: types.RoleAssistant, Content: acc.String()})
	}()

	if o.provider == nil {
		o.emitFallback(ctx, out, &acc, message, artworkNames)
		return
	}

	messages := o.buildMessages(systemPrompt, sessionID, message)
	switch o.streamModel(ctx, out, &acc, messages) {
	case streamCompleted, streamCanceled:
		return
	case streamFaulted:
		acc.Reset()
		o.emitFallback(ctx, out, &acc, message, artworkNames)
	}
}

// resolveSubset maps artwork names to records, dropping unresolved names.
// A nil result means "no filter given" and selects the full catalog.
func (o *Orchestrator) resolveSubset(names []string) []*types.Artwork {
	if len(names) == 0 {
		return nil
	}
	subset := make([]*types.Artwork, 0, len(names))
	for _, name := range names {
		if aw := o.catalog.ByName(name); aw != nil {
			subset = append(subset, aw)
		}
	}
	return subset
}

// buildMessages assembles the model payload: system prompt, the most recent
// prior turns, then the current message. The current message was already
// appended to history, so short sessions carry it twice; the backend
// tolerates the repetition and deduping would change established behavior.
func (o *Orchestrator) buildMessages(systemPrompt string, sessionID types.SessionID, message string) []llm.Message {
	history := o.sessions.Get(sessionID)
	if len(history) > o.window {
		history = history[len(history)-o.window:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(messages, llm.Message{Role: "user", Content: message})
}

// streamModel forwards backend deltas to the caller while accumulating
// them. A request error or fault delta yields streamFaulted; the caller
// then discards the accumulation and reruns the fallback path.
func (o *Orchestrator) streamModel(ctx context.Context, out chan<- string, acc *strings.Builder, messages []llm.Message) streamStatus {
	callCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	stream, err := o.provider.Stream(callCtx, messages)
	if err != nil {
		o.logger.Warn("model call failed, demoting to fallback", "error", err)
		return streamFaulted
	}

	for delta := range stream {
		if delta.Err != nil {
			o.logger.Warn("model stream faulted, demoting to fallback", "error", delta.Err)
			go drain(stream)
			return streamFaulted
		}
		select {
		case out <- delta.Content:
			acc.WriteString(delta.Content)
		case <-ctx.Done():
			go drain(stream)
			return streamCanceled
		}
	}
	return streamCompleted
}

// emitFallback streams the canned reply one rune at a time.
func (o *Orchestrator) emitFallback(ctx context.Context, out chan<- string, acc *strings.Builder, message string, artworkNames []string) {
	text := o.fallback.Respond(message, artworkNames)
	for _, r := range text {
		fragment := string(r)
		select {
		case out <- fragment:
			acc.WriteString(fragment)
		case <-ctx.Done():
			return
		}
	}
}

// drain unblocks an abandoned provider stream so its producer can exit.
func drain(stream <-chan llm.Delta) {
	for range stream {
	}
}
