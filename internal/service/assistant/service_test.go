package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	model "github.com/taskmate-ai/taskmate/backend/internal/model/chat"
	"github.com/taskmate-ai/taskmate/backend/internal/service/assistant"
	chatservice "github.com/taskmate-ai/taskmate/backend/internal/service/chat"
)

type stubCompleter struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.calls++
	s.lastPrompt = systemPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestHandleTurnRoundTrip(t *testing.T) {
	store := chatservice.NewStore()
	completer := &stubCompleter{reply: "hi there"}
	svc := assistant.NewService(store, completer)
	ctx := context.Background()

	sessionID := store.ResolveOrCreate(ctx, "")

	result, err := svc.HandleTurn(ctx, sessionID, "hello", nil)
	if err != nil {
		t.Fatalf("HandleTurn err: %v", err)
	}

	if result.SessionID != sessionID {
		t.Fatalf("session id changed: got %s want %s", result.SessionID, sessionID)
	}
	if result.Reply != "hi there" {
		t.Fatalf("unexpected reply: %q", result.Reply)
	}
	if len(result.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0] != "Break down the task into smaller steps" {
		t.Fatalf("unexpected first suggestion: %q", result.Suggestions[0])
	}
	if len(result.History) != 2 {
		t.Fatalf("expected 2 history messages, got %d", len(result.History))
	}
	if result.History[0].Role != model.RoleUser || result.History[0].Content != "hello" {
		t.Fatalf("unexpected first history entry: %+v", result.History[0])
	}
	if result.History[1].Role != model.RoleAssistant || result.History[1].Content != "hi there" {
		t.Fatalf("unexpected second history entry: %+v", result.History[1])
	}
}

func TestHandleTurnCreatesSessionForEmptyID(t *testing.T) {
	store := chatservice.NewStore()
	svc := assistant.NewService(store, &stubCompleter{reply: "ok"})

	result, err := svc.HandleTurn(context.Background(), "", "hello", nil)
	if err != nil {
		t.Fatalf("HandleTurn err: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("expected a fresh session id")
	}
	if len(result.History) != 2 {
		t.Fatalf("expected 2 history messages, got %d", len(result.History))
	}
}

func TestHandleTurnAccumulatesHistory(t *testing.T) {
	store := chatservice.NewStore()
	svc := assistant.NewService(store, &stubCompleter{reply: "sure"})
	ctx := context.Background()

	first, err := svc.HandleTurn(ctx, "", "plan my week", nil)
	if err != nil {
		t.Fatalf("first turn err: %v", err)
	}

	second, err := svc.HandleTurn(ctx, first.SessionID, "what first?", nil)
	if err != nil {
		t.Fatalf("second turn err: %v", err)
	}

	if second.SessionID != first.SessionID {
		t.Fatalf("session id drifted: %s -> %s", first.SessionID, second.SessionID)
	}
	if len(second.History) != 4 {
		t.Fatalf("expected 4 history messages, got %d", len(second.History))
	}
	wantRoles := []model.Role{model.RoleUser, model.RoleAssistant, model.RoleUser, model.RoleAssistant}
	for i, want := range wantRoles {
		if second.History[i].Role != want {
			t.Fatalf("history[%d] role = %s, want %s", i, second.History[i].Role, want)
		}
	}
}

func TestHandleTurnUpstreamFailureLeavesSessionUntouched(t *testing.T) {
	store := chatservice.NewStore()
	upstreamErr := errors.New("upstream boom")
	svc := assistant.NewService(store, &stubCompleter{err: upstreamErr})
	ctx := context.Background()

	sessionID := store.ResolveOrCreate(ctx, "")

	_, err := svc.HandleTurn(ctx, sessionID, "hello", nil)
	if !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if msgs := store.Messages(ctx, sessionID); len(msgs) != 0 {
		t.Fatalf("session mutated on failure: %d messages", len(msgs))
	}
}

func TestHandleTurnPromptUsesSuppliedHistory(t *testing.T) {
	store := chatservice.NewStore()
	completer := &stubCompleter{reply: "done"}
	svc := assistant.NewService(store, completer)
	ctx := context.Background()

	sessionID := store.ResolveOrCreate(ctx, "")
	store.Append(ctx, sessionID, "stored question", "stored answer")

	supplied := []model.Message{
		{Role: model.RoleUser, Content: "supplied question"},
	}

	if _, err := svc.HandleTurn(ctx, sessionID, "next", supplied); err != nil {
		t.Fatalf("HandleTurn err: %v", err)
	}

	if !strings.Contains(completer.lastPrompt, "User: supplied question") {
		t.Fatalf("prompt missing supplied history:\n%s", completer.lastPrompt)
	}
	if strings.Contains(completer.lastPrompt, "stored question") {
		t.Fatalf("prompt leaked store history:\n%s", completer.lastPrompt)
	}
}
