package gateway

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ai41/adam/internal/archive"
	"github.com/ai41/adam/internal/catalog"
	"github.com/ai41/adam/internal/curator"
	"github.com/ai41/adam/internal/session"
	"github.com/ai41/adam/internal/types"
)

func newTestGateway(t *testing.T) (*Gateway, *session.Store, *archive.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat := catalog.New(t.TempDir(), t.TempDir(), logger)
	sessions := session.NewStore()
	archives, err := archive.NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatal(err)
	}

	orch := curator.New(curator.Options{
		Sessions: sessions,
		Catalog:  cat,
		Prompts:  curator.NewPromptBuilder(cat, "gpt-4o-mini", 0, logger),
		Model:    "gpt-4o-mini",
		Logger:   logger,
	})

	g := New(orch, sessions, archives, 2, logger)
	g.Start(context.Background())
	t.Cleanup(g.Stop)
	return g, sessions, archives
}

func collectFragments(t *testing.T, ch <-chan string) string {
	t.Helper()
	var sb strings.Builder
	for fragment := range ch {
		sb.WriteString(fragment)
	}
	return sb.String()
}

func TestChatDeliversFragments(t *testing.T) {
	g, sessions, _ := newTestGateway(t)
	id := types.SessionID("visitor-1")

	fragments, err := g.Chat(context.Background(), id, "작가가 누구야?", nil)
	if err != nil {
		t.Fatal(err)
	}

	got := collectFragments(t, fragments)
	want := "곽한승. ASD·ADHD 작가이자 AI 창업가야."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if !g.Queue.WaitIdle(2 * time.Second) {
		t.Fatal("queue never went idle")
	}
	if sessions.Len(id) != 2 {
		t.Errorf("expected 2 turns in history, got %d", sessions.Len(id))
	}
}

func TestChatArchivesAfterTurn(t *testing.T) {
	g, _, archives := newTestGateway(t)
	id := types.SessionID("visitor-2")

	fragments, err := g.Chat(context.Background(), id, "멘사 맞아?", nil)
	if err != nil {
		t.Fatal(err)
	}
	collectFragments(t, fragments)

	if !g.Queue.WaitIdle(2 * time.Second) {
		t.Fatal("queue never went idle")
	}

	record, err := archives.Latest(id)
	if err != nil {
		t.Fatal(err)
	}
	if record == nil {
		t.Fatal("expected an archive record")
	}
	if len(record.Messages) != 2 {
		t.Errorf("expected 2 archived messages, got %d", len(record.Messages))
	}
}

func TestChatSerializesPerSession(t *testing.T) {
	g, sessions, _ := newTestGateway(t)
	id := types.SessionID("visitor-3")

	first, err := g.Chat(context.Background(), id, "작가가 누구야?", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Chat(context.Background(), id, "멘사 맞아?", nil)
	if err != nil {
		t.Fatal(err)
	}

	collectFragments(t, first)
	collectFragments(t, second)

	if !g.Queue.WaitIdle(2 * time.Second) {
		t.Fatal("queue never went idle")
	}

	turns := sessions.Get(id)
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	if turns[0].Content != "작가가 누구야?" || turns[2].Content != "멘사 맞아?" {
		t.Errorf("turns out of order: %+v", turns)
	}
	for i, turn := range turns {
		wantRole := types.RoleUser
		if i%2 == 1 {
			wantRole = types.RoleAssistant
		}
		if turn.Role != wantRole {
			t.Errorf("turn %d role %s, want %s", i, turn.Role, wantRole)
		}
	}
}

func TestChatCanceledConsumer(t *testing.T) {
	g, sessions, _ := newTestGateway(t)
	id := types.SessionID("visitor-4")

	ctx, cancel := context.WithCancel(context.Background())
	fragments, err := g.Chat(ctx, id, "작가가 누구야?", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Read one fragment, then walk away.
	<-fragments
	cancel()

	if !g.Queue.WaitIdle(2 * time.Second) {
		t.Fatal("queue never went idle after cancellation")
	}
	// The user turn and a best-effort assistant turn are still recorded.
	if sessions.Len(id) != 2 {
		t.Errorf("expected 2 turns after cancellation, got %d", sessions.Len(id))
	}
}
